package models

// Snapshot field names. They double as the prefix of the element ids the
// dashboard writes to ({field}_{id}).
const (
	FieldStatus                 = "status"
	FieldTemperature            = "temperature"
	FieldAbsoluteHumidity       = "absolute_humidity"
	FieldRelativeHumidity       = "relative_humidity"
	FieldTimeLeft               = "time_left"
	FieldTargetTemperature      = "target_temperature"
	FieldMaxTemperatureDelta    = "max_temperature_delta"
	FieldTargetHumidity         = "target_humidity"
	FieldDryTime                = "dry_time"
	FieldHumidityStorageDryTime = "humidity_storage_dry_time"
	FieldHumidityStorageRange   = "humidity_storage_range"
	FieldStorageTemperature     = "storage_temperature"
)

// SnapshotFields lists every displayed field in page order.
var SnapshotFields = []string{
	FieldStatus,
	FieldTemperature,
	FieldAbsoluteHumidity,
	FieldRelativeHumidity,
	FieldTimeLeft,
	FieldTargetTemperature,
	FieldMaxTemperatureDelta,
	FieldTargetHumidity,
	FieldDryTime,
	FieldHumidityStorageDryTime,
	FieldHumidityStorageRange,
	FieldStorageTemperature,
}

// TelemetrySnapshot is one device record from a poll response.
type TelemetrySnapshot struct {
	ID                     ID    `json:"id"`
	Status                 Value `json:"status"`            // idle | running | error ...
	Temperature            Value `json:"temperature"`       // current reading
	AbsoluteHumidity       Value `json:"absolute_humidity"` // current reading
	RelativeHumidity       Value `json:"relative_humidity"` // current reading
	TimeLeft               Value `json:"time_left"`         // backend formatted or seconds
	TargetTemperature      Value `json:"target_temperature"`
	MaxTemperatureDelta    Value `json:"max_temperature_delta"`
	TargetHumidity         Value `json:"target_humidity"`
	DryTime                Value `json:"dry_time"`
	HumidityStorageDryTime Value `json:"humidity_storage_dry_time"`
	HumidityStorageRange   Value `json:"humidity_storage_range"`
	StorageTemperature     Value `json:"storage_temperature"`
}

// Field is a named snapshot value.
type Field struct {
	Name  string
	Value Value
}

// Fields returns the non-id fields in SnapshotFields order.
func (s TelemetrySnapshot) Fields() []Field {
	return []Field{
		{FieldStatus, s.Status},
		{FieldTemperature, s.Temperature},
		{FieldAbsoluteHumidity, s.AbsoluteHumidity},
		{FieldRelativeHumidity, s.RelativeHumidity},
		{FieldTimeLeft, s.TimeLeft},
		{FieldTargetTemperature, s.TargetTemperature},
		{FieldMaxTemperatureDelta, s.MaxTemperatureDelta},
		{FieldTargetHumidity, s.TargetHumidity},
		{FieldDryTime, s.DryTime},
		{FieldHumidityStorageDryTime, s.HumidityStorageDryTime},
		{FieldHumidityStorageRange, s.HumidityStorageRange},
		{FieldStorageTemperature, s.StorageTemperature},
	}
}
