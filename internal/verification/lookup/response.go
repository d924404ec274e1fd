package lookup

import (
	"bytes"
	"encoding/json"
)

// responseShape tags which upstream format a body matched.
type responseShape int

const (
	shapeInvalid responseShape = iota
	// shapeExplicit carries a boolean "verified" field.
	shapeExplicit
	// shapeImplicit has no "verified" field but returns student data or a name,
	// which some registries use to signal success.
	shapeImplicit
)

func (s responseShape) String() string {
	switch s {
	case shapeExplicit:
		return "explicit"
	case shapeImplicit:
		return "implicit"
	default:
		return "invalid"
	}
}

// rawResponse lists every field any known registry uses.
type rawResponse struct {
	Verified    *bool        `json:"verified"`
	StudentData *StudentData `json:"studentData"`
	Name        *string      `json:"name"`
	Email       string       `json:"email"`
	Department  string       `json:"department"`
	Level       string       `json:"level"`
	Message     string       `json:"message"`
}

type decoded struct {
	shape       responseShape
	verified    bool
	studentData *StudentData
	message     string
}

// decodeResponse classifies a 2xx body. All shape rules live here.
func decodeResponse(body []byte) decoded {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return decoded{shape: shapeInvalid}
	}
	var raw rawResponse
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return decoded{shape: shapeInvalid}
	}

	if raw.Verified != nil {
		return decoded{
			shape:       shapeExplicit,
			verified:    *raw.Verified,
			studentData: raw.StudentData,
			message:     raw.Message,
		}
	}

	if raw.StudentData != nil {
		return decoded{shape: shapeImplicit, verified: true, studentData: raw.StudentData}
	}
	if raw.Name != nil && *raw.Name != "" {
		return decoded{
			shape:    shapeImplicit,
			verified: true,
			studentData: &StudentData{
				Name:       *raw.Name,
				Email:      raw.Email,
				Department: raw.Department,
				Level:      raw.Level,
			},
		}
	}
	return decoded{shape: shapeInvalid}
}

// errorBody is the upstream error payload, when there is one.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func upstreamMessage(body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		return ""
	}
	if eb.Message != "" {
		return eb.Message
	}
	return eb.Error
}
