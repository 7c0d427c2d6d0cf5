package viewmodel

import "nosdois-service/model"

// Navigate switches the current screen. Moving anywhere except the
// writing screen drops pending resume payloads. When an origin is given
// it becomes the back target, so screens reachable from two parents
// return to the right one.
func (m *Model) Navigate(view View, origin View) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if view != ViewWriting {
		m.resumedChat = nil
		m.resumedEmotion = ""
	}
	if origin != "" {
		m.backView = origin
	} else if view == ViewHub {
		m.backView = ViewHub
	}
	m.currentView = view
}

// Back navigates to the recorded back target and returns it.
func (m *Model) Back() View {
	m.mu.Lock()
	target := m.backView
	m.mu.Unlock()
	m.Navigate(target, "")
	return target
}

func (m *Model) CurrentView() View {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.currentView
}

// ResumeChat carries an existing conversation onto the writing screen.
// The payload is one-shot and mutually exclusive with a resumed emotion.
func (m *Model) ResumeChat(entry model.ChatEntry, origin View) {
	m.mu.Lock()
	m.resumedChat = &entry
	m.resumedEmotion = ""
	m.mu.Unlock()
	m.Navigate(ViewWriting, origin)
}

// ResumeEmotion pre-selects a mood on the writing screen without history.
func (m *Model) ResumeEmotion(emotionID string, origin View) {
	m.mu.Lock()
	m.resumedEmotion = emotionID
	m.resumedChat = nil
	m.mu.Unlock()
	m.Navigate(ViewWriting, origin)
}

// TakeResumedChat consumes the pending resumed conversation, if any.
func (m *Model) TakeResumedChat() (model.ChatEntry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.resumedChat == nil {
		return model.ChatEntry{}, false
	}
	entry := *m.resumedChat
	m.resumedChat = nil
	return entry, true
}

// TakeResumedEmotion consumes the pending pre-selected emotion, if any.
func (m *Model) TakeResumedEmotion() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.resumedEmotion == "" {
		return "", false
	}
	emotion := m.resumedEmotion
	m.resumedEmotion = ""
	return emotion, true
}
