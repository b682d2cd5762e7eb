package cmd

import (
	"os"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/simstreet/simstreet/pkg/session"
	"github.com/simstreet/simstreet/pkg/types"
)

func restoreState(s *session.Session, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Infof("no state file %s, starting fresh", path)
			return nil
		}
		return errors.Wrapf(err, "can not read state file %s", path)
	}

	snapshot, err := types.ParseSnapshot(data)
	if err != nil {
		return errors.Wrapf(err, "can not parse state file %s", path)
	}

	s.Restore(*snapshot)
	log.Infof("state restored from %s", path)
	return nil
}

func saveState(s *session.Session, path string) error {
	data, err := s.Snapshot().JSON()
	if err != nil {
		return errors.Wrap(err, "can not serialize snapshot")
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, "can not write state file %s", path)
	}

	log.Infof("state saved to %s", path)
	return nil
}
