package wsmodels

const (
	CodeRequestCreated   = "REQUEST_CREATED"
	CodeRequestDecided   = "REQUEST_DECIDED"
	CodeRequestForwarded = "REQUEST_FORWARDED"
)

type ServerMessage struct {
	ToUserID  string `json:"-"`
	Time      string `json:"time"`       // время события
	Code      string `json:"code"`       // код события
	RequestID string `json:"request_id"` // ид заявки
	Msg       string `json:"msg"`        // текст события
}
