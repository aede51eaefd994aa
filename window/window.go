package window

import (
	"log"
	"os/exec"
	"runtime"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// Open shows the register UI. When a Chromium is available it launches
// an app-mode window so the register feels like a desktop program;
// otherwise it falls back to the default browser.
func Open(url string) {
	go func() {
		bin, found := launcher.LookPath()
		if !found {
			log.Println("No Chromium found, opening default browser.")
			openBrowser(url)
			return
		}

		// Leakless(false) avoids tripping antivirus on store machines.
		u, err := launcher.New().
			Bin(bin).
			Headless(false).
			Leakless(false).
			Set("app", url).
			Launch()
		if err != nil {
			log.Printf("failed to launch app window: %v", err)
			openBrowser(url)
			return
		}

		browser := rod.New().ControlURL(u)
		if err := browser.Connect(); err != nil {
			log.Printf("failed to connect to app window: %v", err)
			openBrowser(url)
		}
	}()
}

func openBrowser(url string) {
	var err error
	switch runtime.GOOS {
	case "windows":
		err = exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	case "darwin":
		err = exec.Command("open", url).Start()
	default:
		err = exec.Command("xdg-open", url).Start()
	}
	if err != nil {
		log.Printf("failed to open browser: %v", err)
	}
}
