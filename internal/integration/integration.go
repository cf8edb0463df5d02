package integration

import (
	"encoding/json"
	"time"

	integrationDatamodel "github.com/parceldesk/mailroom/internal/core/datamodel/integration"
)

const (
	KindCSV = "csv"
	KindAPI = "api"
)

var Kinds = []string{KindCSV, KindAPI}

// Integration is connector metadata only; nothing in this service runs a sync.
type Integration struct {
	ID             int64           `json:"id"`
	OrganizationID int64           `json:"organization_id"`
	Name           string          `json:"name"`
	Kind           string          `json:"kind"`
	Config         json.RawMessage `json:"config,omitempty"`
	IsEnabled      bool            `json:"is_enabled"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

func ToDataModel(i *Integration) *integrationDatamodel.Integration {
	return &integrationDatamodel.Integration{
		ID:             i.ID,
		OrganizationID: i.OrganizationID,
		Name:           i.Name,
		Kind:           i.Kind,
		Config:         i.Config,
		IsEnabled:      i.IsEnabled,
		CreatedAt:      i.CreatedAt,
		UpdatedAt:      i.UpdatedAt,
	}
}

func FromDataModel(i *integrationDatamodel.Integration) *Integration {
	return &Integration{
		ID:             i.ID,
		OrganizationID: i.OrganizationID,
		Name:           i.Name,
		Kind:           i.Kind,
		Config:         i.Config,
		IsEnabled:      i.IsEnabled,
		CreatedAt:      i.CreatedAt,
		UpdatedAt:      i.UpdatedAt,
	}
}
