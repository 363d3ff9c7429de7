package services

import (
	"errors"
	"testing"

	"equipment-visualizer/models"
	"equipment-visualizer/utils"
)

func newTestLogger() *utils.Logger { return utils.NewLogger() }

const validCSV = `Equipment Name,Type,Flowrate,Pressure,Temperature
Pump A,Pump,120.5,8.2,95.0
Compressor B,Compressor,300.0,15.5,120.0
Valve C,Valve,50.0,3.1,60.5
`

func TestValidatorAcceptsWellFormedCSV(t *testing.T) {
	v := NewValidator(newTestLogger())

	rows, err := v.Validate([]byte(validCSV))
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[0].Name != "Pump A" || rows[0].Type != models.TypePump {
		t.Errorf("row 0 = %+v; want Pump A / Pump", rows[0])
	}
	if rows[1].Flowrate != 300.0 || rows[1].Pressure != 15.5 {
		t.Errorf("row 1 numerics = %+v", rows[1])
	}
}

func TestValidatorMissingColumns(t *testing.T) {
	v := NewValidator(newTestLogger())

	csv := "Equipment Name,Type,Flowrate,Temperature\nPump A,Pump,120,95\n"
	_, err := v.Validate([]byte(csv))

	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected SchemaError, got %v", err)
	}
	if len(schemaErr.Missing) != 1 || schemaErr.Missing[0] != "Pressure" {
		t.Errorf("Missing = %v; want [Pressure]", schemaErr.Missing)
	}
	if !IsValidationError(err) {
		t.Error("SchemaError should count as a validation error")
	}
}

func TestValidatorReportsAllMissingColumns(t *testing.T) {
	v := NewValidator(newTestLogger())

	csv := "Equipment Name,Flowrate\nPump A,120\n"
	_, err := v.Validate([]byte(csv))

	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected SchemaError, got %v", err)
	}
	want := []string{"Type", "Pressure", "Temperature"}
	if len(schemaErr.Missing) != len(want) {
		t.Fatalf("Missing = %v; want %v", schemaErr.Missing, want)
	}
	for i, name := range want {
		if schemaErr.Missing[i] != name {
			t.Errorf("Missing[%d] = %q; want %q", i, schemaErr.Missing[i], name)
		}
	}
}

func TestValidatorDropsNonNumericRows(t *testing.T) {
	v := NewValidator(newTestLogger())

	csv := `Equipment Name,Type,Flowrate,Pressure,Temperature
Pump A,Pump,not-a-number,8.2,95.0
Pump B,Pump,120.0,8.5,96.0
Pump C,Pump,130.0,,97.0
`
	rows, err := v.Validate([]byte(csv))
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 surviving row, got %d", len(rows))
	}
	if rows[0].Name != "Pump B" {
		t.Errorf("surviving row = %q; want Pump B", rows[0].Name)
	}
}

func TestValidatorNoValidRows(t *testing.T) {
	v := NewValidator(newTestLogger())

	csv := `Equipment Name,Type,Flowrate,Pressure,Temperature
Pump A,Pump,oops,8.2,95.0
Pump B,Pump,120.0,oops,96.0
`
	_, err := v.Validate([]byte(csv))
	if !errors.Is(err, ErrNoValidRows) {
		t.Errorf("expected ErrNoValidRows, got %v", err)
	}
}

func TestValidatorEmptyInput(t *testing.T) {
	v := NewValidator(newTestLogger())

	for _, input := range []string{"", "Equipment Name,Type,Flowrate,Pressure,Temperature\n"} {
		_, err := v.Validate([]byte(input))
		if !errors.Is(err, ErrEmptyInput) {
			t.Errorf("Validate(%q): expected ErrEmptyInput, got %v", input, err)
		}
	}
}

func TestValidatorRejectsInvalidEncoding(t *testing.T) {
	v := NewValidator(newTestLogger())

	_, err := v.Validate([]byte{0xff, 0xfe, 0x00, 0x41})
	if !errors.Is(err, ErrEncoding) {
		t.Errorf("expected ErrEncoding, got %v", err)
	}
}

func TestValidatorNormalizesTypes(t *testing.T) {
	v := NewValidator(newTestLogger())

	csv := `Equipment Name,Type,Flowrate,Pressure,Temperature
A,sprinkler,1,1,1
B, pump ,1,1,1
C,HEATEXCHANGER,1,1,1
D,Tank,1,1,1
`
	rows, err := v.Validate([]byte(csv))
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}

	want := []models.EquipmentType{models.TypeOther, models.TypePump, models.TypeHeatExchanger, models.TypeTank}
	for i, w := range want {
		if rows[i].Type != w {
			t.Errorf("row %d type = %q; want %q", i, rows[i].Type, w)
		}
	}
}

func TestValidatorIgnoresExtraColumns(t *testing.T) {
	v := NewValidator(newTestLogger())

	csv := `Serial,Equipment Name,Type,Flowrate,Pressure,Temperature,Notes
1,Pump A,Pump,120.5,8.2,95.0,fine
`
	rows, err := v.Validate([]byte(csv))
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if len(rows) != 1 || rows[0].Name != "Pump A" || rows[0].Temperature != 95.0 {
		t.Errorf("rows = %+v", rows)
	}
}

func TestValidatorTreatsNaNAsMissing(t *testing.T) {
	v := NewValidator(newTestLogger())

	csv := `Equipment Name,Type,Flowrate,Pressure,Temperature
Pump A,Pump,NaN,8.2,95.0
Pump B,Pump,120.0,8.5,96.0
`
	rows, err := v.Validate([]byte(csv))
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if len(rows) != 1 || rows[0].Name != "Pump B" {
		t.Errorf("expected only Pump B to survive, got %+v", rows)
	}
}
