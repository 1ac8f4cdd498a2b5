package attendance

import (
	"time"

	"github.com/clinichr/clinic-hr-backend/internal/pkg/validator"
)

type ClockRequest struct {
	Latitude   *float64 `json:"latitude,omitempty"`
	Longitude  *float64 `json:"longitude,omitempty"`
	FaceImage  *string  `json:"face_image,omitempty"` // base64, forwarded to the verifier
	DeviceTime *string  `json:"device_time,omitempty"`
}

func (r ClockRequest) Validate() error {
	var errs validator.ValidationErrors
	if (r.Latitude == nil) != (r.Longitude == nil) {
		errs = append(errs, validator.ValidationError{Field: "location", Message: "latitude and longitude must be provided together"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EventResponse struct {
	ID             string   `json:"id"`
	EmployeeID     string   `json:"employee_id"`
	Timestamp      string   `json:"timestamp"`
	Status         string   `json:"status"`
	SessionHours   *string  `json:"session_hours,omitempty"`
	FaceVerified   *bool    `json:"face_verified,omitempty"`
	FaceConfidence *float64 `json:"face_confidence,omitempty"`
}

func ToEventResponse(e Event) EventResponse {
	resp := EventResponse{
		ID:             e.ID,
		EmployeeID:     e.EmployeeID,
		Timestamp:      e.Timestamp.Format(time.RFC3339),
		Status:         string(e.Status),
		FaceVerified:   e.FaceVerified,
		FaceConfidence: e.FaceConfidence,
	}
	if e.SessionHours != nil {
		s := e.SessionHours.StringFixed(2)
		resp.SessionHours = &s
	}
	return resp
}
