// internal/roomplan/plan.go

// Package roomplan provides named room plans and the room naming schemes used
// by the allocation engine.
package roomplan

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	apperrors "exam-seating/internal/common/errors"
)

// RoomSpec describes one room a program may seat applicants in.
type RoomSpec struct {
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
	Building string `json:"building,omitempty"`
	Floor    string `json:"floor,omitempty"`
}

// ProgramPlan is an ordered list of named rooms for one program.
type ProgramPlan struct {
	Rooms []RoomSpec `json:"rooms"`
}

// TotalCapacity sums the seat capacity across the plan's rooms.
func (p ProgramPlan) TotalCapacity() int {
	total := 0
	for _, r := range p.Rooms {
		total += r.Capacity
	}
	return total
}

// Plan maps program identifiers to their room plans. Programs absent from the
// plan fall back to the sequential naming scheme.
type Plan struct {
	Programs map[string]ProgramPlan `json:"programs"`
}

const planSchema = `{
	"type": "object",
	"required": ["programs"],
	"additionalProperties": false,
	"properties": {
		"programs": {
			"type": "object",
			"additionalProperties": {
				"type": "object",
				"required": ["rooms"],
				"additionalProperties": false,
				"properties": {
					"rooms": {
						"type": "array",
						"minItems": 1,
						"items": {
							"type": "object",
							"required": ["name", "capacity"],
							"additionalProperties": false,
							"properties": {
								"name": {"type": "string", "minLength": 1},
								"capacity": {"type": "integer", "minimum": 1},
								"building": {"type": "string"},
								"floor": {"type": "string"}
							}
						}
					}
				}
			}
		}
	}
}`

// Validate checks raw plan JSON against the plan schema.
func Validate(data []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(planSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return apperrors.NewPlanValidationFailedError(err.Error())
	}
	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			details = append(details, e.String())
		}
		return apperrors.NewPlanValidationFailedError(strings.Join(details, "; "))
	}
	return nil
}

// Parse validates and decodes plan JSON. Room names must be unique within a
// program; the schema cannot express that, so it is checked here.
func Parse(data []byte) (*Plan, error) {
	if err := Validate(data); err != nil {
		return nil, err
	}

	var plan Plan
	if err := json.Unmarshal(data, &plan); err != nil {
		return nil, apperrors.NewPlanValidationFailedError(err.Error())
	}

	for programID, pp := range plan.Programs {
		seen := make(map[string]struct{}, len(pp.Rooms))
		for _, room := range pp.Rooms {
			if _, dup := seen[room.Name]; dup {
				return nil, apperrors.NewPlanValidationFailedError(
					fmt.Sprintf("program %s lists room %q more than once", programID, room.Name))
			}
			seen[room.Name] = struct{}{}
		}
	}
	return &plan, nil
}

// LoadFile reads and parses a plan file.
func LoadFile(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.NewPlanValidationFailedError(fmt.Sprintf("read %s: %v", path, err))
	}
	return Parse(data)
}
