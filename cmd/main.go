package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/unreal-slackers/quinn/internal/commands"
	"github.com/unreal-slackers/quinn/internal/config"
	"github.com/unreal-slackers/quinn/internal/logging"
	"github.com/unreal-slackers/quinn/internal/moderation"
	"github.com/unreal-slackers/quinn/internal/notify"
	"github.com/unreal-slackers/quinn/internal/platform"
	"github.com/unreal-slackers/quinn/internal/store"
	"github.com/unreal-slackers/quinn/internal/sweeper"
	"github.com/unreal-slackers/quinn/internal/watchdog"
)

func main() {
	cfg, err := config.Load("config.json")
	if err != nil {
		fmt.Printf("Config load failed: %v\n", err)
		os.Exit(1)
	}

	if err := logging.InitGlobalLogger(logging.ParseLevel(cfg.Logging.Level), cfg.Logging.Path); err != nil {
		fmt.Printf("Logging init failed: %v\n", err)
		os.Exit(1)
	}
	defer logging.CloseGlobalLogger()

	st, err := store.Open(cfg.Database.Path)
	if err != nil {
		logging.Error("Database init failed: %v", err)
		os.Exit(1)
	}
	defer st.Close()
	logging.Info("Database ready at %s", cfg.Database.Path)

	session, err := platform.New(cfg.Bot.Token, cfg.Bot.GuildID)
	if err != nil {
		logging.Error("Session init failed: %v", err)
		os.Exit(1)
	}

	dispatcher := notify.NewDispatcher(session)
	modService := moderation.NewService(
		st,
		session,
		dispatcher,
		cfg.Channels.ModerationLog,
		cfg.Moderation.BanAppealLink,
		time.Duration(cfg.Moderation.StrikeLifetimeDays)*24*time.Hour,
	)

	// The sweeper wakes at most once a day; anything past 25h is a stall.
	wd := watchdog.New(time.Minute)
	wd.Register("sweeper", 25*time.Hour)

	sw := sweeper.New(st, session, dispatcher, wd)

	probeAppealLink(cfg.Moderation.BanAppealLink)

	if err := session.Open(); err != nil {
		logging.Error("Discord connection failed: %v", err)
		os.Exit(1)
	}
	defer session.Close()

	handler := commands.NewHandler(session, modService, st, wd, cfg)
	if err := handler.Register(); err != nil {
		logging.Error("Command registration failed: %v", err)
		os.Exit(1)
	}

	wd.Start()
	sw.Start()
	logging.Info("Connected to %s, expiration sweeper scheduled", session.GuildName())

	waitForShutdown()

	sw.Stop()
	wd.Stop()
	logging.Info("Shutdown complete")
}

// probeAppealLink checks the configured ban-appeal URL once at startup
// so a broken link shows up in the log before it ends up in a DM.
func probeAppealLink(link string) {
	if link == "" {
		return
	}

	status, _, err := fasthttp.GetTimeout(nil, link, 10*time.Second)
	if err != nil {
		logging.Warn("Ban appeal link %s is unreachable: %v", link, err)
		return
	}
	if status >= 400 {
		logging.Warn("Ban appeal link %s returned status %d", link, status)
	}
}

func waitForShutdown() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	logging.Info("Shutdown signal received")
}
