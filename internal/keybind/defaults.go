package keybind

import "splitdesk/internal/command"

// defaultBindings are the built-in bindings, applied before any config
// overrides. Declaration order matters: SequenceFor returns the first match.
var defaultBindings = []struct {
	Seq string
	Cmd string
}{
	{"ctrl+p", command.PaletteCommand},
	{"SPC p", command.Palette},
	{"SPC o", command.OpenFolder},
	{"SPC r", command.PaletteWorkspace},
	{"ctrl+w v", command.SplitVertical},
	{"ctrl+w c", command.SplitClose},
	{"ctrl+w x", command.SplitExchange},
	{"ctrl+w h", command.SplitLeft},
	{"ctrl+w l", command.SplitRight},
	{"ctrl+w k", command.SplitUp},
	{"ctrl+w j", command.SplitDown},
	{"ctrl+t", command.ToggleTerminal},
	{"ctrl+q", command.Quit},
	{"SPC q", command.Quit},
}

// NewDefaultRegistry returns a registry with the built-in bindings plus any
// overrides (command name -> sequence), e.g. from the config file.
func NewDefaultRegistry(overrides map[string]string) *Registry {
	reg := NewRegistry()
	for _, b := range defaultBindings {
		if seq, ok := overrides[b.Cmd]; ok {
			reg.Bind(seq, b.Cmd)
			continue
		}
		reg.Bind(b.Seq, b.Cmd)
	}
	for name, seq := range overrides {
		if _, ok := reg.SequenceFor(name); !ok {
			reg.Bind(seq, name)
		}
	}
	return reg
}
