package screens

import (
	"context"
	"strconv"

	"irrigation-dashboard/internal/app/ds"
	"irrigation-dashboard/internal/app/gateway"
	"irrigation-dashboard/internal/app/normalize"
	"irrigation-dashboard/internal/app/pagination"
	"irrigation-dashboard/internal/app/selector"
)

const (
	Measurements = "measurements"
	Activations  = "activations"
	Valves       = "valves"
	Controllers  = "controllers"
	Stations     = "stations"
	Tariffs      = "tariffs"
	Energy       = "energy"
	Water        = "water"
	Users        = "users"
)

func id(v int64) string {
	return strconv.FormatInt(v, 10)
}

func stationOptions(ctx context.Context, api API, token, _ string) ([]selector.Option, error) {
	stations, err := api.Stations(ctx, token)
	if err != nil {
		return nil, err
	}
	options := make([]selector.Option, 0, len(stations))
	for _, s := range stations {
		options = append(options, selector.Option{ID: id(s.ID), Label: s.Name})
	}
	return options, nil
}

func sensorOptions(ctx context.Context, api API, token, stationID string) ([]selector.Option, error) {
	sensors, err := api.Sensors(ctx, token, stationID)
	if err != nil {
		return nil, err
	}
	options := make([]selector.Option, 0, len(sensors))
	for _, s := range sensors {
		label := s.Name
		if s.Unit != "" {
			label += " (" + s.Unit + ")"
		}
		options = append(options, selector.Option{ID: id(s.ID), Label: label})
	}
	return options, nil
}

func controllerOptions(ctx context.Context, api API, token, _ string) ([]selector.Option, error) {
	controllers, err := api.Controllers(ctx, token)
	if err != nil {
		return nil, err
	}
	options := make([]selector.Option, 0, len(controllers))
	for _, c := range controllers {
		options = append(options, selector.Option{ID: id(c.ID), Label: c.Name})
	}
	return options, nil
}

func valveOptions(ctx context.Context, api API, token, controllerID string) ([]selector.Option, error) {
	valves, err := api.Valves(ctx, token, controllerID)
	if err != nil {
		return nil, err
	}
	options := make([]selector.Option, 0, len(valves))
	for _, v := range valves {
		options = append(options, selector.Option{ID: id(v.ID), Label: v.Name})
	}
	return options, nil
}

// DefaultCatalog - экраны дашборда в порядке бокового меню
func DefaultCatalog() *Catalog {
	catalog, err := NewCatalog(
		&Definition{
			Name:  Measurements,
			Title: "Medições",
			Levels: []LevelSpec{
				{Key: "stationId", Label: "Estação", AllowAll: true, Options: stationOptions},
				{Key: "sensorId", Label: "Sensor", Parent: "stationId", AllowAll: true, Options: sensorOptions},
			},
			Endpoint:    filtered("measurements"),
			DateRange:   true,
			DefaultSort: pagination.SortDesc,
			UserSort:    true,
			Validate:    gateway.ValidateList[ds.Measurement],
			Schema: normalize.Schema{
				Columns: []normalize.ColumnSpec{
					{Key: "id", Label: "ID", Type: normalize.Number},
					{Key: "measuredAt", Label: "Data/Hora", Type: normalize.Timestamp},
					{Key: "stationId", Label: "Estação", Type: normalize.Number},
					{Key: "sensorId", Label: "Sensor", Type: normalize.Number},
					{Key: "value", Label: "Valor", Type: normalize.Number},
					{Key: "unit", Label: "Unidade"},
				},
			},
		},
		&Definition{
			Name:  Activations,
			Title: "Acionamentos",
			Levels: []LevelSpec{
				{Key: "controllerId", Label: "Controlador", Options: controllerOptions},
			},
			Endpoint:    nested("controllers", "controllerId", "statuses"),
			DateRange:   true,
			DefaultSort: pagination.SortDesc,
			Validate:    gateway.ValidateList[ds.ControllerStatus],
			Schema: normalize.Schema{
				Columns: []normalize.ColumnSpec{
					{Key: "id", Label: "ID", Type: normalize.Number},
					{Key: "recordedAt", Label: "Data/Hora", Type: normalize.Timestamp},
					{Key: "valveId", Label: "Válvula", Type: normalize.Number},
					{Key: "status", Label: "Status"},
					{Key: "active", Label: "Ativo", Type: normalize.Bool},
				},
				Hidden: []string{"controllerId"},
			},
		},
		&Definition{
			Name:  Valves,
			Title: "Válvulas",
			Levels: []LevelSpec{
				{Key: "controllerId", Label: "Controlador", Options: controllerOptions},
			},
			Endpoint:    nested("controllers", "controllerId", "valves"),
			DefaultSort: pagination.SortAsc,
			Validate:    gateway.ValidateList[ds.Valve],
			Schema: normalize.Schema{
				Columns: []normalize.ColumnSpec{
					{Key: "id", Label: "ID", Type: normalize.Number},
					{Key: "name", Label: "Nome"},
					{Key: "number", Label: "Número", Type: normalize.Number},
					{Key: "active", Label: "Ativa", Type: normalize.Bool},
				},
				Hidden: []string{"controllerId"},
			},
			Collection: nested("controllers", "controllerId", "valves"),
			Fields: []Field{
				{Key: "controllerId", Label: "Controlador", Type: FieldInt, Required: true, FromSelector: "controllerId"},
				{Key: "name", Label: "Nome", Required: true},
				{Key: "number", Label: "Número", Type: FieldInt, Required: true},
				{Key: "active", Label: "Ativa", Type: FieldBool},
			},
		},
		&Definition{
			Name:        Controllers,
			Title:       "Controladores",
			Endpoint:    fixed("controllers"),
			DefaultSort: pagination.SortAsc,
			Validate:    gateway.ValidateList[ds.Controller],
			Schema: normalize.Schema{
				Columns: []normalize.ColumnSpec{
					{Key: "id", Label: "ID", Type: normalize.Number},
					{Key: "name", Label: "Nome"},
					{Key: "serialNumber", Label: "Número de série"},
					{Key: "location", Label: "Localização"},
					{Key: "active", Label: "Ativo", Type: normalize.Bool},
				},
			},
			Collection: fixed("controllers"),
			Fields: []Field{
				{Key: "name", Label: "Nome", Required: true},
				{Key: "serialNumber", Label: "Número de série", Required: true},
				{Key: "location", Label: "Localização"},
				{Key: "active", Label: "Ativo", Type: FieldBool},
			},
		},
		&Definition{
			Name:        Stations,
			Title:       "Estações de monitoramento",
			Endpoint:    fixed("monitoring-stations"),
			DefaultSort: pagination.SortAsc,
			Validate:    gateway.ValidateList[ds.MonitoringStation],
			Schema: normalize.Schema{
				Columns: []normalize.ColumnSpec{
					{Key: "id", Label: "ID", Type: normalize.Number},
					{Key: "name", Label: "Nome"},
					{Key: "latitude", Label: "Latitude", Type: normalize.Number},
					{Key: "longitude", Label: "Longitude", Type: normalize.Number},
					{Key: "active", Label: "Ativa", Type: normalize.Bool},
				},
			},
			Collection: fixed("monitoring-stations"),
			Fields: []Field{
				{Key: "name", Label: "Nome", Required: true},
				{Key: "latitude", Label: "Latitude", Type: FieldNumber},
				{Key: "longitude", Label: "Longitude", Type: FieldNumber},
				{Key: "active", Label: "Ativa", Type: FieldBool},
			},
			Photo: true,
		},
		&Definition{
			Name:        Tariffs,
			Title:       "Tarifas",
			Endpoint:    fixed("tariff-schedules"),
			DefaultSort: pagination.SortAsc,
			Validate:    gateway.ValidateList[ds.TariffSchedule],
			Schema: normalize.Schema{
				Columns: []normalize.ColumnSpec{
					{Key: "id", Label: "ID", Type: normalize.Number},
					{Key: "name", Label: "Nome"},
					{Key: "startTime", Label: "Início"},
					{Key: "endTime", Label: "Fim"},
					{Key: "pricePerKwh", Label: "Preço por kWh", Type: normalize.Number},
				},
			},
			Collection: fixed("tariff-schedules"),
			Fields: []Field{
				{Key: "name", Label: "Nome", Required: true},
				{Key: "startTime", Label: "Início", Type: FieldTime, Required: true},
				{Key: "endTime", Label: "Fim", Type: FieldTime, Required: true},
				{Key: "pricePerKwh", Label: "Preço por kWh", Type: FieldNumber, Required: true},
			},
		},
		&Definition{
			Name:  Energy,
			Title: "Consumo de energia",
			Levels: []LevelSpec{
				{Key: "controllerId", Label: "Controlador", AllowAll: true, Options: controllerOptions},
			},
			Endpoint:    filtered("consumptions/energy"),
			DateRange:   true,
			DefaultSort: pagination.SortDesc,
			Validate:    gateway.ValidateList[ds.EnergyConsumption],
			Schema: normalize.Schema{
				Columns: []normalize.ColumnSpec{
					{Key: "id", Label: "ID", Type: normalize.Number},
					{Key: "recordedAt", Label: "Data/Hora", Type: normalize.Timestamp},
					{Key: "controllerId", Label: "Controlador", Type: normalize.Number},
					{Key: "kwh", Label: "kWh", Type: normalize.Number},
					{Key: "cost", Label: "Custo (R$)", Type: normalize.Number},
				},
			},
		},
		&Definition{
			Name:  Water,
			Title: "Consumo de água",
			Levels: []LevelSpec{
				{Key: "controllerId", Label: "Controlador", AllowAll: true, Options: controllerOptions},
				{Key: "valveId", Label: "Válvula", Parent: "controllerId", AllowAll: true, Options: valveOptions},
			},
			Endpoint:    filtered("consumptions/water"),
			DateRange:   true,
			DefaultSort: pagination.SortDesc,
			Validate:    gateway.ValidateList[ds.WaterConsumption],
			Schema: normalize.Schema{
				Columns: []normalize.ColumnSpec{
					{Key: "id", Label: "ID", Type: normalize.Number},
					{Key: "recordedAt", Label: "Data/Hora", Type: normalize.Timestamp},
					{Key: "controllerId", Label: "Controlador", Type: normalize.Number},
					{Key: "valveId", Label: "Válvula", Type: normalize.Number},
					{Key: "liters", Label: "Litros", Type: normalize.Number},
				},
			},
		},
		&Definition{
			Name:        Users,
			Title:       "Usuários",
			Endpoint:    fixed("users"),
			DefaultSort: pagination.SortAsc,
			Validate:    gateway.ValidateList[ds.User],
			Schema: normalize.Schema{
				Columns: []normalize.ColumnSpec{
					{Key: "id", Label: "ID", Type: normalize.Number},
					{Key: "name", Label: "Nome"},
					{Key: "email", Label: "E-mail"},
					{Key: "role", Label: "Perfil"},
				},
				Hidden: []string{"password", "passwordHash"},
			},
			Collection: fixed("users"),
			Fields: []Field{
				{Key: "name", Label: "Nome", Required: true},
				{Key: "email", Label: "E-mail", Type: FieldEmail, Required: true},
				{Key: "role", Label: "Perfil"},
				{Key: "password", Label: "Senha", Type: FieldPassword, Required: true, CreateOnly: true},
			},
		},
	)
	if err != nil {
		panic(err)
	}
	return catalog
}
