package remind

import "github.com/devfort/behabitual/pkg/habit"

type mockNotifier struct {
	reminders   []habit.Habit
	collections map[string][]habit.TimePeriod
	err         error
}

func newMockNotifier() *mockNotifier {
	return &mockNotifier{collections: make(map[string][]habit.TimePeriod)}
}

func (m *mockNotifier) SendReminder(h habit.Habit) error {
	m.reminders = append(m.reminders, h)
	return m.err
}

func (m *mockNotifier) SendDataCollection(h habit.Habit, periods []habit.TimePeriod) error {
	m.collections[h.ID] = periods
	return m.err
}
