package ds

import "time"

// Записи удаленного API. Теги validate задают обязательные поля:
// страница, в которой их нет, отклоняется целиком.

type Measurement struct {
	ID         int64     `json:"id" validate:"required"`
	StationID  int64     `json:"stationId" validate:"required"`
	SensorID   int64     `json:"sensorId" validate:"required"`
	Value      *float64  `json:"value" validate:"required"`
	Unit       string    `json:"unit"`
	MeasuredAt time.Time `json:"measuredAt" validate:"required"`
}

type Sensor struct {
	ID        int64  `json:"id" validate:"required"`
	StationID int64  `json:"stationId"`
	Name      string `json:"name" validate:"required"`
	Unit      string `json:"unit"`
}

type Controller struct {
	ID           int64  `json:"id" validate:"required"`
	Name         string `json:"name" validate:"required"`
	SerialNumber string `json:"serialNumber"`
	Location     string `json:"location"`
	Active       bool   `json:"active"`
}

// ControllerStatus - событие включения или выключения на контроллере (экран acionamentos)
type ControllerStatus struct {
	ID           int64     `json:"id" validate:"required"`
	ControllerID int64     `json:"controllerId" validate:"required"`
	ValveID      *int64    `json:"valveId"`
	Status       string    `json:"status" validate:"required"`
	Active       bool      `json:"active"`
	RecordedAt   time.Time `json:"recordedAt" validate:"required"`
}

type Valve struct {
	ID           int64  `json:"id" validate:"required"`
	ControllerID int64  `json:"controllerId" validate:"required"`
	Name         string `json:"name" validate:"required"`
	Number       int    `json:"number"`
	Active       bool   `json:"active"`
}

type MonitoringStation struct {
	ID        int64    `json:"id" validate:"required"`
	Name      string   `json:"name" validate:"required"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Active    bool     `json:"active"`
}

type TariffSchedule struct {
	ID          int64    `json:"id" validate:"required"`
	Name        string   `json:"name" validate:"required"`
	StartTime   string   `json:"startTime" validate:"required"`
	EndTime     string   `json:"endTime" validate:"required"`
	PricePerKWh *float64 `json:"pricePerKwh" validate:"required"`
}

type EnergyConsumption struct {
	ID           int64     `json:"id" validate:"required"`
	ControllerID int64     `json:"controllerId" validate:"required"`
	KWh          *float64  `json:"kwh" validate:"required"`
	Cost         *float64  `json:"cost"`
	RecordedAt   time.Time `json:"recordedAt" validate:"required"`
}

type WaterConsumption struct {
	ID           int64     `json:"id" validate:"required"`
	ControllerID int64     `json:"controllerId" validate:"required"`
	ValveID      *int64    `json:"valveId"`
	Liters       *float64  `json:"liters" validate:"required"`
	RecordedAt   time.Time `json:"recordedAt" validate:"required"`
}

type User struct {
	ID    int64  `json:"id" validate:"required"`
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role"`
}

// HealthStatus - ответ GET /api/health
type HealthStatus struct {
	Status string `json:"status"`
}
