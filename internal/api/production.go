package api

import "context"

// ProductionType is a producible product type.
type ProductionType struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Unit string `json:"unit,omitempty"`
}

// ProductionLog is one production run entry.
type ProductionLog struct {
	ID       string  `json:"id"`
	TypeID   string  `json:"type_id"`
	TypeName string  `json:"type_name,omitempty"`
	Date     string  `json:"date"`
	Quantity float64 `json:"quantity"`
	Waste    float64 `json:"waste,omitempty"`
	Notes    string  `json:"notes,omitempty"`
}

// RawMaterial is a raw material stock entry.
type RawMaterial struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Unit     string  `json:"unit,omitempty"`
	Quantity float64 `json:"quantity"`
	Cost     float64 `json:"cost,omitempty"`
}

// ProductionLogInput records a production run.
type ProductionLogInput struct {
	TypeID   string  `json:"type_id"`
	Date     string  `json:"date"`
	Quantity float64 `json:"quantity"`
	Waste    float64 `json:"waste,omitempty"`
	Notes    string  `json:"notes,omitempty"`
}

// RawMaterialInput creates or restocks a raw material.
type RawMaterialInput struct {
	Name     string  `json:"name"`
	Unit     string  `json:"unit,omitempty"`
	Quantity float64 `json:"quantity"`
	Cost     float64 `json:"cost,omitempty"`
}

const pathProduction = APIPrefix + "/production"

// ListProductionTypes fetches the product type catalogue.
func (c *Client) ListProductionTypes(ctx context.Context) (Page[ProductionType], error) {
	return list[ProductionType](ctx, c, pathProduction+"/types")
}

// ListProductionLogs fetches production run entries.
func (c *Client) ListProductionLogs(ctx context.Context) (Page[ProductionLog], error) {
	return list[ProductionLog](ctx, c, pathProduction+"/logs")
}

// CreateProductionLog records a production run.
func (c *Client) CreateProductionLog(ctx context.Context, in ProductionLogInput) (ProductionLog, error) {
	return postObject[ProductionLog](ctx, c, pathProduction+"/logs", in)
}

// ListRawMaterials fetches raw material stock.
func (c *Client) ListRawMaterials(ctx context.Context) (Page[RawMaterial], error) {
	return list[RawMaterial](ctx, c, pathProduction+"/raw-materials")
}

// CreateRawMaterial creates or restocks a raw material.
func (c *Client) CreateRawMaterial(ctx context.Context, in RawMaterialInput) (RawMaterial, error) {
	return postObject[RawMaterial](ctx, c, pathProduction+"/raw-materials", in)
}
