// Package csync provides thread-safe concurrent data structures.
//
// Map is a generic, insertion-ordered map protected by a read-write mutex.
// The component registry keeps both of its lookup directions in csync maps so
// that tabs, the terminal UI and the HTTP API can share one registry.
//
// Example usage:
//
//	widgets := csync.NewMap[string, widget.Widget]()
//	widgets.Set("agent_settings.llm_temperature", temperature)
//	if w, exists := widgets.Get("agent_settings.llm_temperature"); exists {
//		fmt.Println(w.Value())
//	}
//
//	widgets.Range(func(id string, w widget.Widget) bool {
//		fmt.Printf("%s = %v\n", id, w.Value())
//		return true // Continue iteration
//	})
package csync
