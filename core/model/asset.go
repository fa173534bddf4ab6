package model

import "time"

// Category places an asset in the fixed seven-level hierarchy, from the
// top-level customer account down to a single spare part.
type Category string

const (
	CategoryCustomer   Category = "customer"
	CategoryStation    Category = "station"
	CategorySubStation Category = "sub_station"
	CategoryAssembly   Category = "assembly"
	CategoryMachine    Category = "machine"
	CategoryComponent  Category = "component"
	CategoryPart       Category = "part"
)

// HealthStatus reflects the last known condition of a machine.
type HealthStatus string

const (
	HealthOK       HealthStatus = "ok"
	HealthWarning  HealthStatus = "warning"
	HealthCritical HealthStatus = "critical"
)

// ServiceSize classifies how large a maintenance visit on a machine is.
// It maps to a configured visit duration, see ServiceConfig.
type ServiceSize string

const (
	SizeS ServiceSize = "S"
	SizeM ServiceSize = "M"
	SizeL ServiceSize = "L"
)

// MachineInfo carries the fields that only exist on machine assets.
type MachineInfo struct {
	Manufacturer    string       `json:"manufacturer,omitempty"`
	Model           string       `json:"model,omitempty"`
	OperatingHours  float64      `json:"operating_hours,omitempty"`
	NextServiceDate *time.Time   `json:"next_service_date,omitempty"`
	Health          HealthStatus `json:"health,omitempty"`
	ServiceSize     ServiceSize  `json:"service_size,omitempty"`
}

// PartInfo carries the fields that only exist on part assets.
type PartInfo struct {
	ArticleNumber string  `json:"article_number,omitempty"`
	Quantity      float64 `json:"quantity,omitempty"`
}

// Asset is a node in the customer/site/machine tree. Root nodes have an
// empty ParentID. Exactly one of Machine or Part may be set, matching the
// category; the other categories carry no detail record.
type Asset struct {
	ID       string       `json:"id"`
	ParentID string       `json:"parent_id,omitempty"`
	Category Category     `json:"category"`
	Name     string       `json:"name"`
	Machine  *MachineInfo `json:"machine,omitempty"`
	Part     *PartInfo    `json:"part,omitempty"`
}

// Size returns the machine's service size, defaulting to M when the asset
// carries no machine record or no explicit size.
func (a Asset) Size() ServiceSize {
	if a.Machine == nil || a.Machine.ServiceSize == "" {
		return SizeM
	}
	return a.Machine.ServiceSize
}

// NextServiceDue returns the machine's next service date, if any.
func (a Asset) NextServiceDue() (time.Time, bool) {
	if a.Machine == nil || a.Machine.NextServiceDate == nil {
		return time.Time{}, false
	}
	return *a.Machine.NextServiceDate, true
}

// NeedsAttention reports whether the machine's health alone justifies a
// visit, independent of any due date.
func (a Asset) NeedsAttention() bool {
	return a.Machine != nil && (a.Machine.Health == HealthWarning || a.Machine.Health == HealthCritical)
}
