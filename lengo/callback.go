package lengo

import (
	"encoding/json"
	"strings"

	"github.com/Morymirco/admin.zalama/common"
)

// Callback is the body Lengo Pay posts to the callback url once a payment
// reaches an intermediate or terminal state.
type Callback struct {
	PayID   string      `json:"pay_id" validate:"required"`
	Status  string      `json:"status" validate:"required"`
	Amount  json.Number `json:"amount,omitempty"`
	Message string      `json:"message"`
	Client  string      `json:"Client"`
}

// NormalizedStatus upper-cases the gateway status and reports whether it is
// one of the statuses the gateway documents.
func (cb *Callback) NormalizedStatus() (status string, known bool) {
	status = strings.ToUpper(strings.TrimSpace(cb.Status))
	switch status {
	case common.LengoStatusSuccess, common.LengoStatusFailed, common.LengoStatusCancelled, common.LengoStatusPending:
		return status, true
	}
	return status, false
}
