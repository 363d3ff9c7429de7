package models

import "testing"

func TestParseEquipmentType(t *testing.T) {
	tests := []struct {
		raw  string
		want EquipmentType
	}{
		{"Pump", TypePump},
		{"pump", TypePump},
		{"  PUMP  ", TypePump},
		{"heatexchanger", TypeHeatExchanger},
		{"HeatExchanger", TypeHeatExchanger},
		{"condenser", TypeCondenser},
		{"sprinkler", TypeOther},
		{"", TypeOther},
		{"Heat Exchanger", TypeOther},
	}

	for _, tt := range tests {
		if got := ParseEquipmentType(tt.raw); got != tt.want {
			t.Errorf("ParseEquipmentType(%q) = %q; want %q", tt.raw, got, tt.want)
		}
	}
}

func TestEquipmentIsOutlier(t *testing.T) {
	tests := []struct {
		pressure, temperature, want bool
	}{
		{false, false, false},
		{true, false, true},
		{false, true, true},
		{true, true, true},
	}

	for _, tt := range tests {
		eq := &Equipment{PressureOutlier: tt.pressure, TemperatureOutlier: tt.temperature}
		if eq.IsOutlier() != tt.want {
			t.Errorf("IsOutlier(%v, %v) = %v; want %v",
				tt.pressure, tt.temperature, eq.IsOutlier(), tt.want)
		}
	}
}
