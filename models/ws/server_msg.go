package wsmodels

type ServerMessage struct {
	ToSessionID string `json:"-"`
	Time        string `json:"time"` // event time
	Code        string `json:"code"` // event code
	From        string `json:"from,omitempty"`
	Msg         string `json:"msg"` // event text
}

const (
	CodeCoachMessage = "coach_message"
	CodeError        = "error"
)
