package domain

// Grade is the school year a student registers in. The value is the enum
// name submitted by the register form's grade selector.
type Grade string

const (
	GradeFirst     Grade = "FIRST"
	GradeSecond    Grade = "SECOND"
	GradeThird     Grade = "THIRD"
	GradeFourth    Grade = "FOURTH"
	GradeFifth     Grade = "FIFTH"
	GradeSixth     Grade = "SIXTH"
	GradeSeventh   Grade = "SEVENTH"
	GradeEighth    Grade = "EIGHTH"
	GradeNinth     Grade = "NINTH"
	GradeTenth     Grade = "TENTH"
	GradeEleventh  Grade = "ELEVENTH"
	GradeTwelfth   Grade = "TWELFTH"
	GradeFreshman  Grade = "FRESHMAN"
	GradeSophomore Grade = "SOPHOMORE"
	GradeJunior    Grade = "JUNIOR"
	GradeSenior    Grade = "SENIOR"
	GradeNA        Grade = "NA"
)

// Grades lists the selectable grades in display order.
var Grades = []Grade{
	GradeFirst, GradeSecond, GradeThird, GradeFourth, GradeFifth, GradeSixth,
	GradeSeventh, GradeEighth, GradeNinth, GradeTenth, GradeEleventh, GradeTwelfth,
	GradeFreshman, GradeSophomore, GradeJunior, GradeSenior,
}

var gradeLabels = map[Grade]string{
	GradeFirst:     "1st Grade",
	GradeSecond:    "2nd Grade",
	GradeThird:     "3rd Grade",
	GradeFourth:    "4th Grade",
	GradeFifth:     "5th Grade",
	GradeSixth:     "6th Grade",
	GradeSeventh:   "7th Grade",
	GradeEighth:    "8th Grade",
	GradeNinth:     "9th Grade",
	GradeTenth:     "10th Grade",
	GradeEleventh:  "11th Grade",
	GradeTwelfth:   "12th Grade",
	GradeFreshman:  "University Freshman",
	GradeSophomore: "University Sophomore",
	GradeJunior:    "University Junior",
	GradeSenior:    "University Senior",
	GradeNA:        "Not Available",
}

// ParseGrade returns the grade named s. Teachers carry GradeNA, which is
// not selectable, so it does not parse.
func ParseGrade(s string) (Grade, bool) {
	g := Grade(s)
	if g == GradeNA {
		return "", false
	}
	_, ok := gradeLabels[g]
	return g, ok
}

// Label is the human readable name of the grade.
func (g Grade) Label() string {
	if l, ok := gradeLabels[g]; ok {
		return l
	}
	return gradeLabels[GradeNA]
}
