package main

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"autotile/internal/autotile"
	"autotile/internal/editor"
	"autotile/internal/geo"
	"autotile/internal/server"
	"autotile/internal/tiles"
)

const (
	defaultAddr   = ":2222"
	hostKeyPath   = "host_key"
	tilesPath     = "assets/tiles.json"
	packsPath     = "assets/packs.json"
	levelPath     = "assets/levels/sample.json"
	defaultWidth  = 72
	defaultHeight = 40
)

func main() {
	log.SetFlags(log.Ltime | log.Lshortfile)

	tilesFile := flag.String("tiles", tilesPath, "tile dex JSON file or directory")
	packsFile := flag.String("packs", packsPath, "pack specs JSON file")
	levelFile := flag.String("level", levelPath, "level JSON file")
	save := flag.Bool("save", false, "write the level back to -level on shutdown")
	flag.Parse()

	if err := ensureHostKey(hostKeyPath); err != nil {
		log.Fatalf("Host key error: %v", err)
	}

	dex, err := loadDex(*tilesFile)
	if err != nil {
		log.Printf("Warning: could not load tiles from %s: %v, using built-in tiles", *tilesFile, err)
		dex = tiles.DefaultDex()
	}
	log.Printf("Tiles loaded: %d in %d categories", dex.Len(), len(dex.Categories()))

	specs, err := autotile.LoadPackSpecs(*packsFile)
	if err != nil {
		log.Printf("Warning: could not load packs from %s: %v, using built-in packs", *packsFile, err)
		specs = autotile.DefaultPackSpecs()
	}
	lib, err := autotile.NewLibrary(dex, specs)
	if err != nil {
		log.Fatalf("Pack error: %v", err)
	}
	log.Printf("Packs loaded: %d path, %d box", len(lib.PathPacks()), len(lib.BoxPacks()))

	var level *editor.Level
	if doc, err := geo.Load(*levelFile); err != nil {
		log.Printf("Warning: could not load level from %s: %v, starting empty", *levelFile, err)
		level = editor.NewLevel("Untitled", defaultWidth, defaultHeight)
	} else {
		level = editor.LevelFromDocument(doc)
	}
	log.Printf("Level loaded: %s (%dx%dx%d)", level.Name, level.Width(), level.Height(), level.Layers())

	loop := editor.NewLoop(level, lib)
	go loop.Run()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		loop.Stop()
		if *save {
			if err := loop.Level().Document().Save(*levelFile); err != nil {
				log.Printf("Save failed: %v", err)
			} else {
				log.Printf("Level saved to %s", *levelFile)
			}
		}
		os.Exit(0)
	}()

	listenAddr := defaultAddr
	if port := os.Getenv("PORT"); port != "" {
		listenAddr = ":" + port
	}
	sshServer := server.NewSSHServer(listenAddr, hostKeyPath, loop)
	log.Printf("Starting autotile editor, connect with: ssh -p %s YourName@localhost", listenAddr[1:])
	if err := sshServer.Start(); err != nil {
		log.Fatalf("SSH server error: %v", err)
	}
}

// loadDex reads a single dex file or every dex file in a directory.
func loadDex(path string) (*tiles.Dex, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return tiles.LoadDexDir(path)
	}
	return tiles.LoadDex(path)
}

func ensureHostKey(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	log.Println("Generating new host key...")
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return err
	}

	keyBytes, err := x509.MarshalPKCS8PrivateKey(priv)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	return pem.Encode(f, &pem.Block{Type: "PRIVATE KEY", Bytes: keyBytes})
}
