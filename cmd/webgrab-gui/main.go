package main

import (
	"fmt"

	"fyne.io/fyne/v2/app"
	"go.uber.org/zap"

	"github.com/webgrab/webgrab/internal/ui"
)

// appVersion is set at build time via -ldflags="-X main.appVersion=x.x.x"
var appVersion = "dev"

const appID = "com.webgrab.webgrab"

func main() {
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	myApp := app.NewWithID(appID)
	myWindow := myApp.NewWindow(fmt.Sprintf("Webgrab v%s", appVersion))

	ui.NewRootUI(myWindow, myApp, logger)

	myWindow.ShowAndRun()
}
