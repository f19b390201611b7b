package progress

import (
	sonic "github.com/bytedance/sonic"
	"github.com/valyala/bytebufferpool"
)

type Status string

const (
	StatusProcessing Status = "processing"
	StatusComplete   Status = "complete"
	StatusError      Status = "error"
)

// Event is one progress notification for a long running operation.
type Event struct {
	TotalUnits     int    `json:"totalUnits"`
	ProcessedUnits int    `json:"processedUnits"`
	Status         Status `json:"status"`
	Message        string `json:"message"`
}

func (e Event) Terminal() bool {
	return e.Status == StatusComplete || e.Status == StatusError
}

// SSE renders the event as a server-sent-events data frame.
func (e Event) SSE() ([]byte, error) {
	payload, err := sonic.Marshal(e)
	if err != nil {
		return nil, err
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString("data: ")
	_, _ = buf.Write(payload)
	_, _ = buf.WriteString("\n\n")

	out := make([]byte, buf.Len())
	copy(out, buf.B)
	return out, nil
}
