// hospital/utils/types/chat.go
package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// FlexID accepts a numeric id sent either as a JSON number or a string;
// the browser client mixes both.
type FlexID uint

func (id *FlexID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = 0
		return nil
	}
	s := string(b)
	if strings.HasPrefix(s, `"`) {
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
	}
	s = strings.TrimSpace(s)
	if s == "" {
		*id = 0
		return nil
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id %q", s)
	}
	*id = FlexID(v)
	return nil
}

// ParseFlexID converts a loosely typed socket argument into an id.
func ParseFlexID(v any) (uint, error) {
	switch t := v.(type) {
	case float64:
		if t < 0 || t != float64(uint(t)) {
			return 0, fmt.Errorf("invalid id %v", t)
		}
		return uint(t), nil
	case string:
		n, err := strconv.ParseUint(strings.TrimSpace(t), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid id %q", t)
		}
		return uint(n), nil
	case json.Number:
		n, err := strconv.ParseUint(t.String(), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid id %q", t)
		}
		return uint(n), nil
	case map[string]any:
		for _, key := range []string{"chatId", "sessionId"} {
			if inner, ok := t[key]; ok {
				return ParseFlexID(inner)
			}
		}
	}
	return 0, fmt.Errorf("invalid id %v", v)
}

type CreateChatRequest struct {
	ConsultationID FlexID `json:"consultationId"`
	DoctorID       FlexID `json:"doctorId"`
	PatientID      FlexID `json:"patientId"`
}

// SendMessageRequest is shared by POST /api/messages and the send-message
// socket event. SessionID is accepted as an alias of ChatID.
type SendMessageRequest struct {
	ChatID    FlexID `json:"chatId"`
	SessionID FlexID `json:"sessionId,omitempty"`
	SenderID  FlexID `json:"senderId,omitempty"`
	Message   string `json:"message"`
}

func (r SendMessageRequest) TargetChat() uint {
	if r.ChatID != 0 {
		return uint(r.ChatID)
	}
	return uint(r.SessionID)
}
