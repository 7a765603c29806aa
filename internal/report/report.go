// internal/report/report.go

// Package report holds the immutable output of one allocation run.
package report

import "exam-seating/internal/models"

// Room is an ordered sequence of seat assignments under one label.
type Room struct {
	label    string
	building string
	floor    string
	capacity int
	seats    []models.SeatAssignment
}

func (r Room) Label() string    { return r.label }
func (r Room) Building() string { return r.building }
func (r Room) Floor() string    { return r.floor }
func (r Room) Capacity() int    { return r.capacity }

// Seats returns the room's assignments in seat-number order.
func (r Room) Seats() []models.SeatAssignment {
	out := make([]models.SeatAssignment, len(r.seats))
	copy(out, r.seats)
	return out
}

func (r Room) SeatCount() int { return len(r.seats) }

// Program is an ordered sequence of rooms for one program.
type Program struct {
	id    string
	rooms []Room
}

func (p Program) ID() string { return p.id }

// Rooms returns the program's rooms in room-index order.
func (p Program) Rooms() []Room {
	out := make([]Room, len(p.rooms))
	copy(out, p.rooms)
	return out
}

func (p Program) RoomCount() int { return len(p.rooms) }

// SeatCount sums assigned seats across the program's rooms.
func (p Program) SeatCount() int {
	total := 0
	for _, r := range p.rooms {
		total += len(r.seats)
	}
	return total
}

// Report maps programs to rooms to seats. It is built once per run and
// read-only afterwards.
type Report struct {
	programs []Program
}

// Programs returns programs in allocation order.
func (r *Report) Programs() []Program {
	out := make([]Program, len(r.programs))
	copy(out, r.programs)
	return out
}

func (r *Report) ProgramCount() int { return len(r.programs) }

// Program looks a program up by id.
func (r *Report) Program(id string) (Program, bool) {
	for _, p := range r.programs {
		if p.id == id {
			return p, true
		}
	}
	return Program{}, false
}

// Seats returns every assignment flattened in traversal order.
func (r *Report) Seats() []models.SeatAssignment {
	var out []models.SeatAssignment
	for _, p := range r.programs {
		for _, room := range p.rooms {
			out = append(out, room.seats...)
		}
	}
	return out
}

func (r *Report) SeatCount() int {
	total := 0
	for _, p := range r.programs {
		total += p.SeatCount()
	}
	return total
}

// Builder assembles a Report. It is only used by the allocation engine.
type Builder struct {
	programs []Program
}

func NewBuilder() *Builder {
	return &Builder{}
}

// StartProgram opens a new program partition. Programs with zero rooms are
// kept; they simply traverse as empty.
func (b *Builder) StartProgram(id string) {
	b.programs = append(b.programs, Program{id: id})
}

// StartRoom opens a new room in the current program.
func (b *Builder) StartRoom(label, building, floor string, capacity int) {
	p := &b.programs[len(b.programs)-1]
	p.rooms = append(p.rooms, Room{
		label:    label,
		building: building,
		floor:    floor,
		capacity: capacity,
	})
}

// AddSeat appends a seat to the current room.
func (b *Builder) AddSeat(seat models.SeatAssignment) {
	p := &b.programs[len(b.programs)-1]
	room := &p.rooms[len(p.rooms)-1]
	room.seats = append(room.seats, seat)
}

// Build finalizes the report. The builder must not be reused afterwards.
func (b *Builder) Build() *Report {
	r := &Report{programs: b.programs}
	b.programs = nil
	return r
}
