package main

import (
	"os"

	"github.com/sirupsen/logrus"
)

var log = logrus.New()

func main() {
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	if err := newRootCommand().Execute(); err != nil {
		log.Error(err)
		os.Exit(exitCodeFor(err))
	}
}
