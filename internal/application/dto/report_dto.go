package dto

import "github.com/shopspring/decimal"

// StockReportFilter filtros de la conciliación. From y To son inclusivos
// ("2006-01-02"); VehicleID, Origin y Destination vacíos significan "todos".
type StockReportFilter struct {
	From        string `query:"from"`
	To          string `query:"to"`
	VehicleID   string `query:"vehicle"`
	Origin      string `query:"origin"`
	Destination string `query:"destination"`
}

// StockLine neto conciliado de un artículo.
// Display es la cadena de dos niveles ("2 CS + 2 piezas", con "-" como
// prefijo si el neto es negativo); NetBase es el neto en unidad base ya
// redondeado a un decimal.
type StockLine struct {
	ItemName string          `json:"item_name"`
	NetBase  decimal.Decimal `json:"net_base"`
	Display  string          `json:"display"`
}

// StockCategoryGroup líneas de una categoría, en orden de primera aparición
// dentro de los datos filtrados.
type StockCategoryGroup struct {
	Category string      `json:"category"`
	Lines    []StockLine `json:"lines"`
}

// StockReportResponse resultado de la conciliación. Un filtro sin
// coincidencias produce Categories vacío con Initialized=true; las tablas de
// respaldo ausentes producen Initialized=false.
type StockReportResponse struct {
	Initialized bool                 `json:"initialized"`
	Categories  []StockCategoryGroup `json:"categories"`
}

// VehiclesResponse identificadores de vehículo distintos del log, ordenados.
type VehiclesResponse struct {
	Vehicles []string `json:"vehicles"`
}
