package validation

type ProfileInput struct {
	Status string
	Skills string
}

func ValidateProfileInput(in ProfileInput) (Errors, bool) {
	errs := Errors{}

	if isEmpty(in.Status) {
		errs["status"] = "Status is required"
	}
	if isEmpty(in.Skills) {
		errs["skills"] = "Skills is required"
	}

	return errs, len(errs) == 0
}
