package checks

func NewResult(project, checkID string, status Status, message string) Result {
	res := Result{
		Status:  status,
		Project: project,
		CheckID: checkID,
	}
	if message != "" {
		res.Message = message
	}
	return res
}

func PassResult(project, checkID string) Result {
	return NewResult(project, checkID, StatusPass, "")
}

func PassResultWithMessage(project, checkID, message string) Result {
	return NewResult(project, checkID, StatusPass, message)
}

func FailResult(project, checkID, message string) Result {
	return NewResult(project, checkID, StatusFail, message)
}

func ErrorResult(project, checkID, message string) Result {
	return NewResult(project, checkID, StatusError, message)
}

func SkippedResult(project, checkID, message string) Result {
	return NewResult(project, checkID, StatusSkipped, message)
}

func PassResultWithEvidence(project, checkID, message string, evidence map[string]string) Result {
	res := NewResult(project, checkID, StatusPass, message)
	res.Evidence = evidence
	return res
}

func FailResultWithEvidence(project, checkID, message string, evidence map[string]string) Result {
	res := NewResult(project, checkID, StatusFail, message)
	res.Evidence = evidence
	return res
}
