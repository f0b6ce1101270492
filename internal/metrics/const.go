package metrics

const Namespace = "google_auth"

const (
	OutcomeSuccess      = "success"
	OutcomeInvalidToken = "invalid_token"
	OutcomeDenied       = "denied"
	OutcomeBadRequest   = "bad_request"
	OutcomeError        = "error"
)
