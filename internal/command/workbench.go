package command

// Workbench command names. These are the identifiers keybindings are declared
// against and the names carried by WorkbenchMsg.
const (
	PaletteCommand   = "palette.command"
	Palette          = "palette"
	PaletteWorkspace = "palette.workspace"
	OpenFolder       = "open_folder"
	EnableModal      = "enable_modal"
	DisableModal     = "disable_modal"
	SplitVertical    = "split_vertical"
	SplitClose       = "split_close"
	SplitExchange    = "split_exchange"
	SplitLeft        = "split_left"
	SplitRight       = "split_right"
	SplitUp          = "split_up"
	SplitDown        = "split_down"
	ToggleTerminal   = "toggle_terminal"
	Quit             = "quit"
)

// WorkbenchCommand is a dispatchable workbench command with the human-readable
// description shown in the palette and in empty-container affordances.
type WorkbenchCommand struct {
	Name string
	Desc string
}

// EmptyContainerCommands returns the affordances an empty split container
// offers, depending on whether a workspace folder is open and whether modal
// editing is enabled.
func EmptyContainerCommands(modal, hasWorkspace bool) []WorkbenchCommand {
	modalCmd := WorkbenchCommand{Name: EnableModal, Desc: "Enable Modal Editing"}
	if modal {
		modalCmd = WorkbenchCommand{Name: DisableModal, Desc: "Disable Modal Editing"}
	}
	if !hasWorkspace {
		return []WorkbenchCommand{
			{Name: PaletteCommand, Desc: "Show All Commands"},
			modalCmd,
			{Name: OpenFolder, Desc: "Open Folder"},
			{Name: PaletteWorkspace, Desc: "Open Recent"},
		}
	}
	return []WorkbenchCommand{
		{Name: PaletteCommand, Desc: "Show All Commands"},
		modalCmd,
		{Name: Palette, Desc: "Go To File"},
	}
}
