package browser

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/webgrab/webgrab/internal/config"
)

// Resolve maps a configured browser choice to an executable path. For
// "custom" the provided path is used as-is; for the known browsers, common
// install locations for the current OS are probed first, then PATH.
func Resolve(choice, customPath string) (string, error) {
	if choice == config.BrowserCustom {
		if customPath == "" {
			return "", fmt.Errorf("browser: custom choice requires an executable path")
		}
		if _, err := os.Stat(customPath); err != nil {
			return "", fmt.Errorf("browser: custom executable %q: %w", customPath, err)
		}
		return customPath, nil
	}

	for _, path := range installCandidates(choice) {
		if path == "" {
			continue
		}
		expanded := os.ExpandEnv(path)
		if _, err := os.Stat(expanded); err == nil {
			return expanded, nil
		}
	}

	for _, name := range pathNames(choice) {
		if path, err := exec.LookPath(name); err == nil {
			return path, nil
		}
	}

	return "", fmt.Errorf("browser: could not find %s; install it or set browser=custom with an explicit path", choice)
}

// installCandidates returns common install locations for the chosen browser
// on the current OS.
func installCandidates(choice string) []string {
	switch runtime.GOOS {
	case "windows":
		return windowsCandidates(choice)
	case "darwin":
		return macOSCandidates(choice)
	default:
		return linuxCandidates(choice)
	}
}

// pathNames returns executable names to try on PATH, most specific first.
func pathNames(choice string) []string {
	switch choice {
	case config.BrowserChrome:
		return []string{"google-chrome", "google-chrome-stable", "chrome"}
	case config.BrowserChromium:
		return []string{"chromium", "chromium-browser"}
	case config.BrowserEdge:
		return []string{"microsoft-edge", "microsoft-edge-stable", "msedge"}
	case config.BrowserBrave:
		return []string{"brave-browser", "brave"}
	default:
		return nil
	}
}

func windowsCandidates(choice string) []string {
	localAppData := os.Getenv("LOCALAPPDATA")
	programFiles := os.Getenv("ProgramFiles")
	programFilesX86 := os.Getenv("ProgramFiles(x86)")

	switch choice {
	case config.BrowserChrome:
		return []string{
			filepath.Join(programFiles, "Google", "Chrome", "Application", "chrome.exe"),
			filepath.Join(programFilesX86, "Google", "Chrome", "Application", "chrome.exe"),
			filepath.Join(localAppData, "Google", "Chrome", "Application", "chrome.exe"),
		}
	case config.BrowserChromium:
		return []string{
			filepath.Join(programFiles, "Chromium", "Application", "chrome.exe"),
			filepath.Join(programFilesX86, "Chromium", "Application", "chrome.exe"),
			filepath.Join(localAppData, "Chromium", "Application", "chrome.exe"),
		}
	case config.BrowserEdge:
		return []string{
			filepath.Join(programFiles, "Microsoft", "Edge", "Application", "msedge.exe"),
			filepath.Join(programFilesX86, "Microsoft", "Edge", "Application", "msedge.exe"),
		}
	case config.BrowserBrave:
		return []string{
			filepath.Join(programFiles, "BraveSoftware", "Brave-Browser", "Application", "brave.exe"),
			filepath.Join(localAppData, "BraveSoftware", "Brave-Browser", "Application", "brave.exe"),
		}
	}
	return nil
}

func macOSCandidates(choice string) []string {
	switch choice {
	case config.BrowserChrome:
		return []string{
			"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
			os.ExpandEnv("$HOME/Applications/Google Chrome.app/Contents/MacOS/Google Chrome"),
		}
	case config.BrowserChromium:
		return []string{
			"/Applications/Chromium.app/Contents/MacOS/Chromium",
			os.ExpandEnv("$HOME/Applications/Chromium.app/Contents/MacOS/Chromium"),
		}
	case config.BrowserEdge:
		return []string{"/Applications/Microsoft Edge.app/Contents/MacOS/Microsoft Edge"}
	case config.BrowserBrave:
		return []string{"/Applications/Brave Browser.app/Contents/MacOS/Brave Browser"}
	}
	return nil
}

func linuxCandidates(choice string) []string {
	switch choice {
	case config.BrowserChrome:
		return []string{
			"/usr/bin/google-chrome",
			"/usr/bin/google-chrome-stable",
			"/var/lib/flatpak/exports/bin/com.google.Chrome",
		}
	case config.BrowserChromium:
		return []string{
			"/usr/bin/chromium",
			"/usr/bin/chromium-browser",
			"/snap/bin/chromium",
			"/var/lib/flatpak/exports/bin/org.chromium.Chromium",
		}
	case config.BrowserEdge:
		return []string{
			"/usr/bin/microsoft-edge-stable",
			"/usr/bin/microsoft-edge",
		}
	case config.BrowserBrave:
		return []string{
			"/usr/bin/brave-browser",
			"/opt/brave.com/brave/brave-browser",
		}
	}
	return nil
}
