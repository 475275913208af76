package models

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestID_JSON(t *testing.T) {
	t.Parallel()

	decode := []struct {
		in   string
		want ID
	}{
		{`"A"`, "A"},
		{`7`, "7"},
		{`7.0`, "7"},
		{`1e2`, "100"},
		{`-0`, "0"},
		{`12345678901234567890`, "12345678901234567890"},
		{`null`, ""},
	}
	for _, c := range decode {
		var id ID
		if err := json.Unmarshal([]byte(c.in), &id); err != nil {
			t.Fatalf("Unmarshal(%s): %v", c.in, err)
		}
		if id != c.want {
			t.Fatalf("Unmarshal(%s)=%q; want %q", c.in, id, c.want)
		}
	}

	var id ID
	if err := json.Unmarshal([]byte(`{"x":1}`), &id); err == nil {
		t.Fatalf("object id should fail")
	}

	encode := []struct {
		in   ID
		want string
	}{
		{"12", `12`},
		{"A", `"A"`},
		{"012", `"012"`},
		{"", `""`},
	}
	for _, c := range encode {
		b, err := json.Marshal(c.in)
		if err != nil {
			t.Fatalf("Marshal(%q): %v", c.in, err)
		}
		if string(b) != c.want {
			t.Fatalf("Marshal(%q)=%s; want %s", c.in, b, c.want)
		}
	}
}

func TestTelemetrySnapshot_Presence(t *testing.T) {
	t.Parallel()

	var s TelemetrySnapshot
	raw := `{"id":"A","status":"idle","temperature":21.50,"target_temperature":null}`
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if !s.Status.Present() || s.Status.String() != "idle" {
		t.Fatalf("status=%+v", s.Status)
	}
	if s.Temperature.String() != "21.5" {
		t.Fatalf("number should be shown in shortest form, got %q", s.Temperature.String())
	}
	if f, ok := s.Temperature.Float(); !ok || f != 21.5 {
		t.Fatalf("Float()=%v,%v", f, ok)
	}
	if !s.TargetTemperature.Present() || s.TargetTemperature.String() != "" {
		t.Fatalf("null should be present and empty: %+v", s.TargetTemperature)
	}
	if s.DryTime.Present() {
		t.Fatalf("absent key reported as present")
	}

	fields := s.Fields()
	if len(fields) != len(SnapshotFields) {
		t.Fatalf("Fields() len=%d", len(fields))
	}
	for i, f := range fields {
		if f.Name != SnapshotFields[i] {
			t.Fatalf("field %d=%s; want %s", i, f.Name, SnapshotFields[i])
		}
	}
}

func TestValue_NumberText(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{`21.50`, "21.5"},
		{`1e2`, "100"},
		{`-0.0`, "0"},
		{`40`, "40"},
		{`0.000001`, "0.000001"},
		{`1e-7`, "1e-7"},
		{`1e21`, "1e+21"},
		{`123456789012345680000`, "123456789012345680000"},
		{`"21.50"`, "21.50"},
		{`true`, "true"},
	}
	for _, c := range cases {
		var v Value
		if err := json.Unmarshal([]byte(c.in), &v); err != nil {
			t.Fatalf("Unmarshal(%s): %v", c.in, err)
		}
		if v.String() != c.want {
			t.Fatalf("Unmarshal(%s)=%q; want %q", c.in, v.String(), c.want)
		}
	}
}

func TestValue_KeepsKindOnMarshal(t *testing.T) {
	t.Parallel()

	var s struct {
		A Value `json:"a"`
		B Value `json:"b"`
		C Value `json:"c"`
		D Value `json:"d"`
		E Value `json:"e"`
	}
	raw := `{"a":"21.5","b":21.50,"c":null,"d":false}`
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	b, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(b) != `{"a":"21.5","b":21.5,"c":null,"d":false,"e":null}` {
		t.Fatalf("got %s", b)
	}

	b, _ = json.Marshal([]Value{NewValue("7"), NewNumber(22.25), NewNumber(0)})
	if string(b) != `["7",22.25,0]` {
		t.Fatalf("constructors: got %s", b)
	}
}

func TestCommand_NilPresetsMarshalAsNull(t *testing.T) {
	t.Parallel()

	b, err := json.Marshal(Command{ID: "A", Status: StatusApplyProfile})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(b) != `{"id":"A","status":1,"preset_id":null,"custom_preset":null}` {
		t.Fatalf("got %s", b)
	}
}

func TestCustomPreset_SetGetAndWire(t *testing.T) {
	t.Parallel()

	var p CustomPreset
	if err := p.Set(ProfileTemperature, "30"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := p.Set("pressure", "1"); err == nil {
		t.Fatalf("unknown field accepted")
	}
	if v, ok := p.Get(ProfileTemperature); !ok || v != "30" {
		t.Fatalf("Get=%q,%v", v, ok)
	}
	if _, ok := p.Get(ProfileDryTime); ok {
		t.Fatalf("unset field reported as set")
	}

	b, _ := json.Marshal(p)
	if string(b) != `{"temperature":"30"}` {
		t.Fatalf("wire=%s", b)
	}
}

func TestCustomPreset_Parse(t *testing.T) {
	t.Parallel()

	p := CustomPreset{
		Temperature:          Text(" 30 "),
		Humidity:             Text(""),
		DryTime:              Text("abc"),
		HumidityStorageRange: Text("1e2"),
		StorageTemperature:   Text("x"),
	}
	_, err := p.Parse()
	var fe *ProfileFieldError
	if !errors.As(err, &fe) {
		t.Fatalf("expected ProfileFieldError, got %v", err)
	}
	if fe.Field != ProfileDryTime {
		t.Fatalf("first error field=%s", fe.Field)
	}

	p.DryTime, p.StorageTemperature = Text("120"), nil
	prof, err := p.Parse()
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if prof.Temperature == nil || *prof.Temperature != 30 {
		t.Fatalf("temperature=%v", prof.Temperature)
	}
	if prof.Humidity != nil || prof.StorageTemperature != nil {
		t.Fatalf("empty and nil values should parse as unset")
	}
	if *prof.HumidityStorageRange != 100 {
		t.Fatalf("range=%v", *prof.HumidityStorageRange)
	}
	if v, _ := p.Get(ProfileTemperature); v != " 30 " {
		t.Fatalf("Parse must not rewrite the raw value, got %q", v)
	}
}
