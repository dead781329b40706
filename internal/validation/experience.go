package validation

type ExperienceInput struct {
	Title   string
	Company string
	From    string
}

func ValidateExperienceInput(in ExperienceInput) (Errors, bool) {
	errs := Errors{}

	if isEmpty(in.Title) {
		errs["title"] = "Job title is required"
	}
	if isEmpty(in.Company) {
		errs["company"] = "Company is required"
	}
	if isEmpty(in.From) {
		errs["from"] = "From date is required"
	}

	return errs, len(errs) == 0
}
