package internal

import (
	"os"
	"path/filepath"
	"runtime"
)

// CardPaths are the source directories found on a mounted SD card.
type CardPaths struct {
	DCIM string // photo root (DCIM)
	Clip string // video root (PRIVATE/M4ROOT/CLIP, Sony XAVC/AVCHD layout)
}

// FindSDCard searches the platform's usual mount points for a card carrying
// a DCIM folder and, on the same card, the Sony video clip folder.
func FindSDCard() CardPaths {
	return findCardIn(mountRoots())
}

// mountRoots lists the directories where removable media shows up.
func mountRoots() []string {
	if runtime.GOOS == "darwin" {
		return []string{"/Volumes"}
	}
	username := os.Getenv("USER")
	return []string{
		filepath.Join("/media", username),
		"/media",
		"/mnt",
		filepath.Join("/run/media", username),
	}
}

// findCardIn scans each root's immediate children for the camera folder
// layout. The first DCIM found wins; the video folder is only taken from a
// card that also carries photos or from the first card that has one.
func findCardIn(roots []string) CardPaths {
	var found CardPaths

	for _, root := range roots {
		entries, err := os.ReadDir(root)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			card := filepath.Join(root, entry.Name())

			if found.DCIM == "" {
				dcim := filepath.Join(card, "DCIM")
				if info, err := os.Stat(dcim); err == nil && info.IsDir() {
					found.DCIM = dcim
				}
			}
			if found.Clip == "" {
				clip := filepath.Join(card, "PRIVATE", "M4ROOT", "CLIP")
				if info, err := os.Stat(clip); err == nil && info.IsDir() {
					found.Clip = clip
				}
			}
			if found.DCIM != "" && found.Clip != "" {
				return found
			}
		}
	}
	return found
}
