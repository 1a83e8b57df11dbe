package model

import (
	"encoding/json"
	"errors"
	"testing"
)

func validInput() ServiceRequestInput {
	return ServiceRequestInput{
		Homes:    150,
		UnitType: "single_family",
		Streams: []StreamInput{
			{Type: "trash", FrequencyPerWeek: 1},
			{Type: "recycling", FrequencyPerWeek: 1},
		},
	}
}

func TestParseValidRequest(t *testing.T) {
	req, err := ParseServiceRequest(validInput())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if req.Homes != 150 || req.UnitType != UnitSingleFamily {
		t.Fatalf("unexpected request: %+v", req)
	}
	if len(req.Streams) != 2 {
		t.Fatalf("streams: got %d want 2", len(req.Streams))
	}
	// Generation rates come from the fixed table.
	if req.Streams[0].VolumePerUnitPerWeek != GenerationRates[StreamTrash].VolumeCubicYards {
		t.Fatalf("trash volume rate: got %v", req.Streams[0].VolumePerUnitPerWeek)
	}
}

func TestParseRejectsNonPositiveHomes(t *testing.T) {
	for _, homes := range []float64{0, -5} {
		in := validInput()
		in.Homes = FlexFloat(homes)
		if _, err := ParseServiceRequest(in); err == nil {
			t.Fatalf("homes=%v: expected error", homes)
		}
	}
}

func TestParseRejectsUnknownStreamType(t *testing.T) {
	in := validInput()
	in.Streams = []StreamInput{{Type: "plasma", FrequencyPerWeek: 1}}
	_, err := ParseServiceRequest(in)
	if err == nil {
		t.Fatal("expected error for unknown stream type")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
}

func TestParseRejectsDuplicateStreams(t *testing.T) {
	in := validInput()
	in.Streams = []StreamInput{
		{Type: "trash", FrequencyPerWeek: 1},
		{Type: "trash", FrequencyPerWeek: 2},
	}
	if _, err := ParseServiceRequest(in); err == nil {
		t.Fatal("expected error for duplicate stream")
	}
}

func TestParseRejectsMalformedBreakdown(t *testing.T) {
	in := validInput()
	in.UnitBreakdown = map[string]FlexFloat{"castle": 10}
	if _, err := ParseServiceRequest(in); err == nil {
		t.Fatal("expected error for unknown sub-type")
	}

	in = validInput()
	in.UnitBreakdown = map[string]FlexFloat{"townhome": 500}
	if _, err := ParseServiceRequest(in); err == nil {
		t.Fatal("expected error when breakdown exceeds homes")
	}
}

func TestParseNormalizesAliases(t *testing.T) {
	in := validInput()
	in.UnitType = "Single-Family"
	req, err := ParseServiceRequest(in)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if req.UnitType != UnitSingleFamily {
		t.Fatalf("unit type: got %s", req.UnitType)
	}
}

func TestParseDefaultsZeroFrequencyToWeekly(t *testing.T) {
	in := validInput()
	in.Streams = []StreamInput{{Type: "trash"}}
	req, err := ParseServiceRequest(in)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if req.Streams[0].FrequencyPerWeek != 1 {
		t.Fatalf("frequency: got %d want 1", req.Streams[0].FrequencyPerWeek)
	}
}

// Upstream parsers sometimes hand numbers over as strings.
func TestFlexFloatAcceptsStrings(t *testing.T) {
	var in ServiceRequestInput
	body := []byte(`{"homes":"150","unitType":"townhome","streams":[{"type":"trash","frequencyPerWeek":"2"}]}`)
	if err := json.Unmarshal(body, &in); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	req, err := ParseServiceRequest(in)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if req.Homes != 150 || req.Streams[0].FrequencyPerWeek != 2 {
		t.Fatalf("unexpected: %+v", req)
	}
}

func TestFlexFloatRejectsNaN(t *testing.T) {
	var f FlexFloat
	if err := f.UnmarshalJSON([]byte(`"NaN"`)); err == nil {
		t.Fatal("NaN must be rejected at the boundary")
	}
}

func TestParseRejectsBadCoordinates(t *testing.T) {
	in := validInput()
	in.Location = &GeoPoint{Lat: 123, Lng: 200}
	if _, err := ParseServiceRequest(in); err == nil {
		t.Fatal("expected error for out-of-range coordinates")
	}
}
