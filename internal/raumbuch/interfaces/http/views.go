package http

import (
	"time"

	"elektro-raumbuch/internal/raumbuch/application"
	"elektro-raumbuch/internal/raumbuch/domain"
)

// View types shape the JSON responses. Optional references serialize as
// null when unset.

type projectView struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type projectSummaryView struct {
	projectView
	Counts struct {
		Zones   int `json:"zones"`
		Trades  int `json:"trades"`
		Devices int `json:"devices"`
	} `json:"counts"`
}

type zoneView struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"projectId"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Order     int       `json:"order"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type roomView struct {
	ID        string    `json:"id"`
	ZoneID    string    `json:"zoneId"`
	Code      string    `json:"code"`
	Number    int       `json:"number"`
	Name      string    `json:"name"`
	Order     int       `json:"order"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type deviceView struct {
	ID          string    `json:"id"`
	ProjectID   string    `json:"projectId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Code        string    `json:"code"`
	TradeID     *string   `json:"tradeId"`
	CategoryID  *string   `json:"categoryId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type roomDeviceView struct {
	ID            string    `json:"id"`
	RoomID        string    `json:"roomId"`
	DeviceID      *string   `json:"deviceId"`
	Designation   string    `json:"designation"`
	Code          string    `json:"code"`
	TotalCode     string    `json:"totalCode"`
	TradeID       *string   `json:"tradeId"`
	CategoryID    *string   `json:"categoryId"`
	ConnectionID  *string   `json:"connectionId"`
	InstallZoneID *string   `json:"installZoneId"`
	CableType     string    `json:"cableType"`
	Target        string    `json:"target"`
	Quantity      int       `json:"quantity"`
	Order         int       `json:"order"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type tradeView struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"projectId"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	HGNumber  string    `json:"hgNumber"`
	Order     int       `json:"order"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type categoryView struct {
	ID        string    `json:"id"`
	TradeID   string    `json:"tradeId"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	Order     int       `json:"order"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type connectionView struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"projectId"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	Voltage   string    `json:"voltage"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type installZoneView struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"projectId"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	Order     int       `json:"order"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func optionalID(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}

func toProjectView(p *domain.Project) projectView {
	return projectView{ID: p.ID, Name: p.Name, Description: p.Description, CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt}
}

func toProjectSummaryView(summary application.ProjectSummary) projectSummaryView {
	view := projectSummaryView{projectView: toProjectView(&summary.Project)}
	view.Counts.Zones = summary.Counts.Zones
	view.Counts.Trades = summary.Counts.Trades
	view.Counts.Devices = summary.Counts.Devices
	return view
}

func toZoneView(z *domain.Zone) zoneView {
	return zoneView{ID: z.ID, ProjectID: z.ProjectID, Code: z.Code, Name: z.Name, Order: z.Order, CreatedAt: z.CreatedAt, UpdatedAt: z.UpdatedAt}
}

func toRoomView(r *domain.Room) roomView {
	return roomView{ID: r.ID, ZoneID: r.ZoneID, Code: r.Code, Number: r.Number, Name: r.Name, Order: r.Order, CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt}
}

func toDeviceView(d *domain.Device) deviceView {
	return deviceView{
		ID: d.ID, ProjectID: d.ProjectID, Name: d.Name, Description: d.Description, Code: d.Code,
		TradeID: optionalID(d.TradeID), CategoryID: optionalID(d.CategoryID),
		CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt,
	}
}

func toRoomDeviceView(rd *domain.RoomDevice) roomDeviceView {
	return roomDeviceView{
		ID: rd.ID, RoomID: rd.RoomID, DeviceID: optionalID(rd.DeviceID),
		Designation: rd.Designation, Code: rd.Code, TotalCode: rd.TotalCode,
		TradeID: optionalID(rd.TradeID), CategoryID: optionalID(rd.CategoryID),
		ConnectionID: optionalID(rd.ConnectionID), InstallZoneID: optionalID(rd.InstallZoneID),
		CableType: rd.CableType, Target: rd.Target, Quantity: rd.Quantity, Order: rd.Order,
		CreatedAt: rd.CreatedAt, UpdatedAt: rd.UpdatedAt,
	}
}

func toTradeView(t *domain.Trade) tradeView {
	return tradeView{ID: t.ID, ProjectID: t.ProjectID, Name: t.Name, Code: t.Code, HGNumber: t.HGNumber, Order: t.Order, CreatedAt: t.CreatedAt, UpdatedAt: t.UpdatedAt}
}

func toCategoryView(c *domain.Category) categoryView {
	return categoryView{ID: c.ID, TradeID: c.TradeID, Name: c.Name, Code: c.Code, Order: c.Order, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt}
}

func toConnectionView(c *domain.Connection) connectionView {
	return connectionView{ID: c.ID, ProjectID: c.ProjectID, Name: c.Name, Code: c.Code, Voltage: c.Voltage, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt}
}

func toInstallZoneView(iz *domain.InstallZone) installZoneView {
	return installZoneView{ID: iz.ID, ProjectID: iz.ProjectID, Name: iz.Name, Code: iz.Code, Order: iz.Order, CreatedAt: iz.CreatedAt, UpdatedAt: iz.UpdatedAt}
}
