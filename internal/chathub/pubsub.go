package chathub

// startBridgeListener consumes event envelopes published by other instances
// and fans them out to local connections. Envelopes this instance published
// are skipped, so the bridge never double-delivers.
func (m *ManagerService) startBridgeListener() {
	if m.Bus == nil {
		return
	}

	go func() {
		for env := range m.Bus.SubscribeEvents() {
			if env.Origin == m.InstanceID {
				continue
			}
			switch {
			case env.RoomID != "":
				m.deliverToRoom(env.RoomID, env.Event, "")
			case env.UserID != "":
				m.deliverToUser(env.UserID, env.Event)
			}
		}
	}()
}
