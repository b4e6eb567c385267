package main

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/howeyc/fsnotify"
)

// swapper is implemented by *vip.Runner.
type swapper interface {
	Swap(rom []byte)
}

// watch reloads romFile into r each time the file is written.
// Closing the returned Closer stops watching.
func watch(romFile string, r swapper) (io.Closer, error) {
	romFile = filepath.Clean(romFile)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Watch(filepath.Dir(romFile)); err != nil {
		watcher.Close()
		return nil, err
	}

	go func() {
		var reload <-chan time.Time
		for {
			select {
			case <-reload:
				rom, err := os.ReadFile(romFile)
				if err != nil {
					log.Printf("watch: %v", err)
					break
				}
				log.Printf("watch: reload %s", filepath.Base(romFile))
				r.Swap(rom)
			case ev, ok := <-watcher.Event:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) == romFile && !ev.IsAttrib() {
					// Editors and assemblers often write in bursts.
					reload = time.After(100 * time.Millisecond)
				}
			case err, ok := <-watcher.Error:
				if !ok {
					return
				}
				log.Printf("watch: %v", err)
			}
		}
	}()
	return watcher, nil
}
