package page

// Menu is the mobile navigation toggle.
type Menu struct {
	open bool
}

func (m *Menu) Open() bool { return m.open }

// Toggle flips the menu and returns the new state.
func (m *Menu) Toggle() bool {
	m.open = !m.open
	return m.open
}

// Escape closes an open menu and reports whether it did.
func (m *Menu) Escape() bool {
	if !m.open {
		return false
	}
	m.open = false
	return true
}

// ClickOutside closes the menu unless the click landed on the menu or its
// toggle button.
func (m *Menu) ClickOutside(inMenu, inToggle bool) {
	if !inMenu && !inToggle {
		m.open = false
	}
}

func (m *Menu) AriaExpanded() string {
	if m.open {
		return "true"
	}
	return "false"
}

// Icon names the glyph shown on the toggle button.
func (m *Menu) Icon() string {
	if m.open {
		return "close"
	}
	return "menu"
}

// NumberedLink reports whether link text carries a number, such as a
// footnote reference.
func NumberedLink(text string) bool {
	for _, r := range text {
		if r >= '0' && r <= '9' {
			return true
		}
	}
	return false
}
