package commands

import (
	"os"
	"strings"
	"testing"
)

// chdir is a stand-in for t.Chdir, which requires Go 1.24.
func chdir(t *testing.T, dir string) {
	t.Helper()

	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("error getting working directory (%v)", err)
	}

	if err := os.Chdir(dir); err != nil {
		t.Fatalf("error changing directory (%v)", err)
	}

	t.Cleanup(func() {
		if err := os.Chdir(wd); err != nil {
			t.Fatalf("error restoring working directory (%v)", err)
		}
	})
}

func TestNewLogger(t *testing.T) {
	chdir(t, t.TempDir())

	log, logfile, closer, err := newLogger("prueba")
	if err != nil {
		t.Fatalf("error creating logger (%v)", err)
	}

	log.Info().Msg("qwerty uiop")

	if err := closer(); err != nil {
		t.Fatalf("error closing log file (%v)", err)
	}

	bytes, err := os.ReadFile(logfile)
	if err != nil {
		t.Fatalf("error reading log file (%v)", err)
	}

	if !strings.Contains(string(bytes), "qwerty uiop") {
		t.Errorf("log file missing entry - got:%q", string(bytes))
	}
}

func TestNewLoggerReleasesFile(t *testing.T) {
	chdir(t, t.TempDir())

	fds := func() int {
		entries, err := os.ReadDir("/proc/self/fd")
		if err != nil {
			t.Skipf("cannot read /proc/self/fd (%v)", err)
		}

		return len(entries)
	}

	// warm up the logs directory so the counts are comparable
	if _, _, closer, err := newLogger("prueba"); err != nil {
		t.Fatalf("error creating logger (%v)", err)
	} else {
		closer()
	}

	before := fds()

	for i := 0; i < 10; i++ {
		_, _, closer, err := newLogger("prueba")
		if err != nil {
			t.Fatalf("error creating logger (%v)", err)
		}

		if err := closer(); err != nil {
			t.Fatalf("error closing log file (%v)", err)
		}
	}

	if after := fds(); after > before {
		t.Errorf("log files left open - before:%v, after:%v", before, after)
	}
}
