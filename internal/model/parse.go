package model

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ValidationError reports a malformed or out-of-range request field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid request: %s: %s", e.Field, e.Reason)
}

// FlexFloat tolerates numbers arriving as JSON numbers, numeric strings,
// or null from upstream parsers. NaN and Inf are rejected at parse time
// so they can never reach the engine.
type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" || s == `""` {
		*f = 0
		return nil
	}
	s = strings.Trim(s, `"`)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("not a number: %q", s)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("non-finite number: %q", s)
	}
	*f = FlexFloat(v)
	return nil
}

// StreamInput is the loose per-stream input: type plus pickup frequency.
// Volume and weight rates come from the generation-rate table.
type StreamInput struct {
	Type             string    `json:"type"`
	FrequencyPerWeek FlexFloat `json:"frequencyPerWeek"`
}

// ServiceRequestInput is the untrusted wire form of a service request.
type ServiceRequestInput struct {
	Homes                FlexFloat            `json:"homes"`
	UnitType             string               `json:"unitType"`
	UnitBreakdown        map[string]FlexFloat `json:"unitBreakdown,omitempty"`
	Streams              []StreamInput        `json:"streams"`
	Address              string               `json:"address,omitempty"`
	Location             *GeoPoint            `json:"location,omitempty"`
	IsWalkout            bool                 `json:"isWalkout,omitempty"`
	IsGated              bool                 `json:"isGated,omitempty"`
	HasSpecialContainers bool                 `json:"hasSpecialContainers,omitempty"`
	SpecialRequirements  []string             `json:"specialRequirements,omitempty"`
	CommunityType        string               `json:"communityType,omitempty"`
	AccessType           string               `json:"accessType,omitempty"`
}

// GenerationRate is the fixed per-unit weekly output for one stream type.
type GenerationRate struct {
	VolumeCubicYards float64 // loose cubic yards per unit per week
	WeightPounds     float64 // pounds per unit per week
}

// GenerationRates indexes the fixed table by stream type. Figures are
// per occupied residential unit at weekly pickup.
var GenerationRates = map[StreamType]GenerationRate{
	StreamTrash:     {VolumeCubicYards: 0.45, WeightPounds: 40},
	StreamRecycling: {VolumeCubicYards: 0.30, WeightPounds: 18},
	StreamYardWaste: {VolumeCubicYards: 0.40, WeightPounds: 55},
}

// ParseServiceRequest is the single funnel from untrusted input to a
// fully-typed ServiceRequest. Everything downstream assumes its output
// is well-formed.
func ParseServiceRequest(in ServiceRequestInput) (ServiceRequest, error) {
	var req ServiceRequest

	homes := int(in.Homes)
	if homes <= 0 {
		return req, &ValidationError{Field: "homes", Reason: "must be a positive integer"}
	}
	req.Homes = homes

	ut := normalizeUnitType(in.UnitType)
	if !ut.Valid() {
		return req, &ValidationError{Field: "unitType", Reason: fmt.Sprintf("unrecognized unit type %q", in.UnitType)}
	}
	req.UnitType = ut

	if len(in.UnitBreakdown) > 0 {
		bd := make(map[UnitType]int, len(in.UnitBreakdown))
		total := 0
		for k, v := range in.UnitBreakdown {
			kt := normalizeUnitType(k)
			if !kt.Valid() || kt == UnitMixedResidential || kt == UnitUnknown {
				return req, &ValidationError{Field: "unitBreakdown", Reason: fmt.Sprintf("unrecognized sub-type %q", k)}
			}
			n := int(v)
			if n < 0 {
				return req, &ValidationError{Field: "unitBreakdown", Reason: fmt.Sprintf("negative count for %q", k)}
			}
			if n == 0 {
				continue
			}
			bd[kt] = n
			total += n
		}
		if total > homes {
			return req, &ValidationError{Field: "unitBreakdown", Reason: fmt.Sprintf("breakdown total %d exceeds homes %d", total, homes)}
		}
		if len(bd) > 0 {
			req.UnitBreakdown = bd
		}
	}

	if len(in.Streams) == 0 {
		return req, &ValidationError{Field: "streams", Reason: "at least one waste stream is required"}
	}
	seen := map[StreamType]struct{}{}
	for i, s := range in.Streams {
		st := StreamType(strings.ToLower(strings.TrimSpace(s.Type)))
		if !st.Valid() {
			return req, &ValidationError{Field: fmt.Sprintf("streams[%d].type", i), Reason: fmt.Sprintf("unknown stream type %q", s.Type)}
		}
		if _, dup := seen[st]; dup {
			return req, &ValidationError{Field: fmt.Sprintf("streams[%d].type", i), Reason: fmt.Sprintf("duplicate stream type %q", st)}
		}
		seen[st] = struct{}{}
		freq := int(s.FrequencyPerWeek)
		if freq < 0 {
			return req, &ValidationError{Field: fmt.Sprintf("streams[%d].frequencyPerWeek", i), Reason: "must be >= 0"}
		}
		if freq == 0 {
			freq = 1
		}
		rate := GenerationRates[st]
		req.Streams = append(req.Streams, ServiceStream{
			Type:                 st,
			VolumePerUnitPerWeek: rate.VolumeCubicYards,
			WeightPerUnitPerWeek: rate.WeightPounds,
			FrequencyPerWeek:     freq,
		})
	}

	if in.Location != nil {
		if in.Location.Lat < -90 || in.Location.Lat > 90 || in.Location.Lng < -180 || in.Location.Lng > 180 {
			return req, &ValidationError{Field: "location", Reason: "coordinates out of range"}
		}
		loc := *in.Location
		req.Location = &loc
	}

	req.Address = strings.TrimSpace(in.Address)
	req.IsWalkout = in.IsWalkout
	req.IsGated = in.IsGated
	req.HasSpecialContainers = in.HasSpecialContainers
	req.CommunityType = strings.ToLower(strings.TrimSpace(in.CommunityType))
	req.AccessType = strings.ToLower(strings.TrimSpace(in.AccessType))
	for _, sr := range in.SpecialRequirements {
		if t := strings.TrimSpace(sr); t != "" {
			req.SpecialRequirements = append(req.SpecialRequirements, t)
		}
	}
	return req, nil
}

// DecodeServiceRequest parses a JSON body through the validation funnel.
func DecodeServiceRequest(data []byte) (ServiceRequest, error) {
	var in ServiceRequestInput
	if err := json.Unmarshal(data, &in); err != nil {
		return ServiceRequest{}, &ValidationError{Field: "body", Reason: err.Error()}
	}
	return ParseServiceRequest(in)
}

func normalizeUnitType(s string) UnitType {
	t := strings.ToLower(strings.TrimSpace(s))
	t = strings.ReplaceAll(t, "-", "_")
	t = strings.ReplaceAll(t, " ", "_")
	switch t {
	case "single_family", "singlefamily", "sfh":
		return UnitSingleFamily
	case "townhome", "townhouse":
		return UnitTownhome
	case "condo", "condominium":
		return UnitCondo
	case "mixed_residential", "mixed":
		return UnitMixedResidential
	case "", "unknown":
		return UnitUnknown
	}
	return UnitType(t)
}
