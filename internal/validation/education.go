package validation

type EducationInput struct {
	School       string
	Degree       string
	FieldOfStudy string
	From         string
}

func ValidateEducationInput(in EducationInput) (Errors, bool) {
	errs := Errors{}

	if isEmpty(in.School) {
		errs["school"] = "School is required"
	}
	if isEmpty(in.Degree) {
		errs["degree"] = "Degree is required"
	}
	if isEmpty(in.FieldOfStudy) {
		errs["fieldofstudy"] = "Field of study is required"
	}
	if isEmpty(in.From) {
		errs["from"] = "From date is required"
	}

	return errs, len(errs) == 0
}
