package catalog

// Target identifies where a click landed relative to the navigation.
type Target int

const (
	TargetToggle  Target = iota // the menu button
	TargetNav                   // anywhere inside the navigation panel
	TargetOutside               // anywhere else on the page
)

// Menu is the open/closed state of the mobile navigation panel.
type Menu struct {
	open bool
}

// MenuFromQuery opens the menu when v is "open". Used by the no-script fallback.
func MenuFromQuery(v string) Menu {
	return Menu{open: v == "open"}
}

// Toggle flips the menu and returns the new state.
func (m *Menu) Toggle() bool {
	m.open = !m.open
	return m.open
}

func (m *Menu) Close() { m.open = false }

func (m *Menu) IsOpen() bool { return m.open }

// Click applies a click at target.
func (m *Menu) Click(target Target) {
	switch target {
	case TargetToggle:
		m.Toggle()
	case TargetNav:
	default:
		m.Close()
	}
}

// AriaExpanded is the value of the toggle's aria-expanded attribute.
func (m Menu) AriaExpanded() string {
	if m.open {
		return "true"
	}
	return "false"
}

// NavClass is the class attribute of the navigation panel.
func (m Menu) NavClass() string {
	if m.open {
		return "site-nav site-nav--open"
	}
	return "site-nav"
}

// ToggleQuery is the menu query value a no-script toggle link should carry.
func (m Menu) ToggleQuery() string {
	if m.open {
		return "closed"
	}
	return "open"
}
