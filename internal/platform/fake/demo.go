package fake

import (
	"github.com/mj1618/desktop-annotator/internal/geom"
	"github.com/mj1618/desktop-annotator/internal/model"
	"github.com/mj1618/desktop-annotator/internal/platform"
)

// Demo process IDs.
const (
	DemoEditorPID = 501
	DemoNotesPID  = 602
)

// DemoProvider returns a small synthetic desktop: a text editor window
// partly covered by a notes window on a single 1440x900 display. It backs
// the CLI's --demo flag so the tool can be exercised without permissions.
func DemoProvider() *platform.Provider {
	window := NewElement("AXWindow", geom.R(100, 100, 800, 600), Title("Untitled"))
	toolbar := NewElement("AXToolbar", geom.R(100, 128, 800, 40))
	toolbar.Add(
		NewElement("AXButton", geom.R(110, 133, 60, 30), Title("Bold"), Identifier("bold-button")),
		NewElement("AXButton", geom.R(180, 133, 60, 30), Title("Italic")),
		NewElement("AXButton", geom.R(250, 133, 30, 30), Identifier("gear.badge"), Desc("Settings")),
	)
	scroll := NewElement("AXScrollArea", geom.R(100, 168, 800, 480))
	scroll.Add(NewElement("AXTextArea", geom.R(100, 168, 800, 440), Identifier("editor"), Value("Hello"), Focused(true)))
	footer := NewElement("AXGroup", geom.R(100, 648, 800, 52))
	footer.Add(
		NewElement("AXStaticText", geom.R(110, 663, 200, 20), Value("3 words")),
		NewElement("AXButton", geom.R(600, 658, 90, 30), Title("Cancel")),
		NewElement("AXButton", geom.R(700, 658, 90, 30), Title("Save"), Identifier("save-button"), Enabled(true)),
	)
	window.Add(toolbar, scroll, footer)
	editorRoot := NewElement("AXApplication", geom.Rect{}, Title("TextEdit")).Unset(platform.AttrFrame)
	editorRoot.Add(window)

	notesWindow := NewElement("AXWindow", geom.R(0, 0, 300, 200), Title("Notes"))
	notesWindow.Add(NewElement("AXStaticText", geom.R(10, 40, 280, 20), Value("Groceries")))
	notesRoot := NewElement("AXApplication", geom.Rect{}, Title("Notes")).Unset(platform.AttrFrame)
	notesRoot.Add(notesWindow)

	return &platform.Provider{
		Accessibility: &Accessibility{Apps: map[int]*App{
			DemoEditorPID: {Pid: DemoEditorPID, Root: editorRoot},
			DemoNotesPID:  {Pid: DemoNotesPID, Root: notesRoot},
		}},
		Windows: &WindowServer{Windows: []model.WindowInfo{
			{ID: 1, OwnerPID: 0, OwnerName: "Window Server", Title: "Menubar", Bounds: geom.R(0, 0, 1440, 25), Layer: 24, OnScreen: true},
			{ID: 20, OwnerPID: DemoNotesPID, OwnerName: "Notes", Title: "Notes", Bounds: geom.R(0, 0, 300, 200), OnScreen: true},
			{ID: 21, OwnerPID: DemoEditorPID, OwnerName: "TextEdit", Title: "Untitled", Bounds: geom.R(100, 100, 800, 600), OnScreen: true},
		}},
		Screens: &Screens{List: []geom.Screen{{ID: 1, Name: "Built-in Display", Frame: geom.R(0, 0, 1440, 900), Focused: true}}},
		WindowManager: &WindowManager{
			FrontName: "TextEdit",
			FrontPID:  DemoEditorPID,
			Names:     map[int]string{DemoEditorPID: "TextEdit", DemoNotesPID: "Notes"},
			Bundles:   map[int]string{DemoEditorPID: "com.apple.TextEdit", DemoNotesPID: "com.apple.Notes"},
		},
	}
}
