package session

import "github.com/cory-johannsen/adventure/internal/game/world"

// DoorStatus is the player-visible state of a door.
type DoorStatus struct {
	ID      string
	Visible bool
	Locked  bool
	Open    bool
}

// Status is a read-only view of a session's world.
type Status struct {
	Title    string
	Room     string
	RoomName string
	// Exits lists the directions the player can see from here.
	Exits     []string
	Inventory []string
	Found     int
	Total     int
	Doors     []DoorStatus
	Visited   int
}

// Status reports where the player is and what they carry.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return statusOf(s.player.World)
}

func statusOf(st *world.State) Status {
	room := st.CurrentRoom()
	out := Status{Title: st.Content().Title, Room: room, RoomName: room}
	if r, ok := st.Room(room); ok {
		out.RoomName = r.Name
	}
	for _, e := range st.AvailableExits(room) {
		out.Exits = append(out.Exits, string(e.Direction))
	}
	for _, it := range st.Inventory() {
		out.Inventory = append(out.Inventory, it.Display)
	}
	out.Found, out.Total = st.ScavengerProgress()
	for _, def := range st.Content().Doors {
		if d, ok := st.Door(def.ID); ok {
			out.Doors = append(out.Doors, DoorStatus{ID: d.ID, Visible: d.Visible, Locked: d.Locked, Open: d.Open})
		}
	}
	visited := make(map[string]bool)
	for _, v := range st.Visited() {
		visited[v] = true
	}
	out.Visited = len(visited)
	return out
}
