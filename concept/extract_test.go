package concept_test

import (
	"reflect"
	"sort"
	"testing"

	"github.com/c360studio/schemaver/concept"
	"github.com/c360studio/schemaver/schema"
)

const cabinSDL = `
type Query {
    vehicle: Vehicle
}

type Vehicle {
    id: ID
    speed: Float
    state: VehicleState
    cabin: Cabin
    wheels: [Wheel]
}

type Cabin {
    temperature: Float
    doors: [Door]
}

type Door {
    locked: Boolean
    state: VehicleState
}

type Wheel {
    diameter: Float
}

enum VehicleState {
    PARKED
    DRIVING
}
`

func mustLoad(t *testing.T, sdl string) *schema.Schema {
	t.Helper()
	s, err := schema.LoadString(sdl)
	if err != nil {
		t.Fatalf("load schema: %v", err)
	}
	return s
}

func TestExtract(t *testing.T) {
	set := concept.Extract(mustLoad(t, cabinSDL))

	wantFields := []string{
		"Cabin.temperature",
		"Door.locked",
		"Door.state",
		"Vehicle.speed",
		"Vehicle.state",
		"Wheel.diameter",
	}
	gotFields := append([]string(nil), set.Fields...)
	sort.Strings(gotFields)
	if !reflect.DeepEqual(gotFields, wantFields) {
		t.Errorf("Fields = %v, want %v", gotFields, wantFields)
	}

	if !reflect.DeepEqual(set.Enums, []string{"VehicleState"}) {
		t.Errorf("Enums = %v, want [VehicleState]", set.Enums)
	}

	wantNested := map[string]string{
		"Vehicle.cabin":  "Cabin",
		"Vehicle.wheels": "Wheel",
		"Cabin.doors":    "Door",
	}
	if !reflect.DeepEqual(set.NestedObjects, wantNested) {
		t.Errorf("NestedObjects = %v, want %v", set.NestedObjects, wantNested)
	}

	// Root operation types are not concepts.
	if _, ok := set.Objects["Query"]; ok {
		t.Error("Query should not be extracted as a concept")
	}

	// Identifier fields are cross-references, not concepts.
	for _, field := range set.Fields {
		if field == "Vehicle.id" {
			t.Error("Vehicle.id should be skipped")
		}
	}
}

func TestExtractObjectWithoutLeafFields(t *testing.T) {
	set := concept.Extract(mustLoad(t, `
type Query { container: Container }
type Container { item: Item }
type Item { name: String }
`))

	// Container has only an object-valued field but is still a concept.
	if _, ok := set.Objects["Container"]; !ok {
		t.Error("Container should be a concept despite having no leaf fields")
	}

	names := set.Names()
	found := false
	for _, name := range names {
		if name == "Container" {
			found = true
		}
	}
	if !found {
		t.Errorf("Names() = %v, should include Container", names)
	}
}

func TestFieldsUsingEnum(t *testing.T) {
	got := concept.FieldsUsingEnum(mustLoad(t, cabinSDL), "VehicleState")
	sort.Strings(got)
	want := []string{"Door.state", "Vehicle.state"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FieldsUsingEnum() = %v, want %v", got, want)
	}
}

func TestFieldsUsingEnumArguments(t *testing.T) {
	s := mustLoad(t, `
type Query { vehicle: Vehicle }
type Vehicle {
    history(state: VehicleState): Float
    speed: Float
}
enum VehicleState { PARKED DRIVING }
`)
	got := concept.FieldsUsingEnum(s, "VehicleState")
	if !reflect.DeepEqual(got, []string{"Vehicle.history"}) {
		t.Errorf("FieldsUsingEnum() = %v, want [Vehicle.history]", got)
	}
}

func TestFieldsUsingEnumUnknown(t *testing.T) {
	if got := concept.FieldsUsingEnum(mustLoad(t, cabinSDL), "NoSuchEnum"); len(got) != 0 {
		t.Errorf("FieldsUsingEnum() = %v, want empty", got)
	}
}

func TestParentType(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Vehicle.speed", "Vehicle"},
		{"Vehicle", "Vehicle"},
		{"VehicleState", "VehicleState"},
	}
	for _, tt := range tests {
		if got := concept.ParentType(tt.name); got != tt.want {
			t.Errorf("ParentType(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}
