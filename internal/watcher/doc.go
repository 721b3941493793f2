// Package watcher monitors the settings directory with debouncing.
//
// The watcher wraps fsnotify. It is pointed at one directory at a time
// (Watch retargets it when the settings directory changes) and reports
// created, written, removed or renamed JSON files. A save touches several
// files in quick succession, so changes are collected until the directory
// has been quiet for the debounce delay and then delivered in one callback:
//
//	w, err := watcher.New(300*time.Millisecond, func(paths []string) {
//	    broker.Publish(events.Event{Type: events.SettingsFilesChangedEvent, Payload: paths})
//	})
//	if err != nil {
//	    return err
//	}
//	defer w.Close()
//	w.Watch(settingsDir)
package watcher
