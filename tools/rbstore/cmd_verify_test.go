package main

import "fmt"
import "os"
import "path/filepath"
import "testing"

import "github.com/stretchr/testify/require"

var _ = fmt.Sprintf("dummy")

func TestVerifyChecks(t *testing.T) {
	testcases := []struct {
		args []string
		run  []string
	}{
		{[]string{"-run", "ascending"}, []string{"ascending"}},
		{[]string{"-run", "insertremove"}, []string{"insertremove"}},
		{[]string{"-run", "cascade"}, []string{"cascade"}},
		{[]string{"-run", "reverse", "-n", "100", "-seed", "7"}, []string{"reverse"}},
		{[]string{"-run", "ascending, cascade"}, []string{"ascending", "cascade"}},
		{[]string{"-n", "100"}, nil},
	}
	for _, tcase := range testcases {
		parseVerifyopts(tcase.args)
		if len(tcase.run) == 0 {
			require.Empty(t, verifyopts.run)
		} else {
			require.Equal(t, tcase.run, verifyopts.run)
		}
		if rc := doVerify(); rc != 0 {
			t.Errorf("%v: expected %v, got %v", tcase.args, 0, rc)
		}
	}
}

func TestVerifySelected(t *testing.T) {
	parseVerifyopts([]string{"-run", "cascade"})
	if !selected("cascade") {
		t.Errorf("expected cascade selected")
	} else if selected("reverse") {
		t.Errorf("unexpected reverse selected")
	}
	parseVerifyopts([]string{})
	require.True(t, selected("reverse"))
}

func TestVerifyWithSettings(t *testing.T) {
	filename := writesettings(t, "allowdups: true\nmaxindexes: 4\nlog.level: warn\n")
	parseVerifyopts([]string{"-settings", filename, "-n", "50"})
	require.Equal(t, filename, verifyopts.settings)
	if rc := doVerify(); rc != 0 {
		t.Errorf("expected %v, got %v", 0, rc)
	}
}

func TestLoadsettings(t *testing.T) {
	setts, err := loadsettings("")
	require.NoError(t, err)
	require.False(t, setts.Bool("allowdups"))
	require.Equal(t, "info", setts.String("log.level"))

	content := "allowdups: true\nmaxindexes: 4\nnodearena.initslots: 16\nlog.level: warn\n"
	setts, err = loadsettings(writesettings(t, content))
	require.NoError(t, err)
	require.True(t, setts.Bool("allowdups"))
	require.Equal(t, int64(4), setts.Int64("maxindexes"))
	require.Equal(t, int64(16), setts.Int64("nodearena.initslots"))
	require.Equal(t, "warn", setts.String("log.level"))
	// defaults survive the mixin.
	require.Greater(t, setts.Int64("nodearena.capacity"), int64(0))

	_, err = loadsettings(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	_, err = loadsettings(writesettings(t, "allowdups: [true\n"))
	require.Error(t, err)

	loadsettings("") // restore the default logger
}

func TestLoad(t *testing.T) {
	for _, dups := range []bool{false, true} {
		parseLoadopts([]string{"-n", "2000", "-seed", "11", "-check", "250"})
		loadopts.dups = dups
		if rc := doLoad(); rc != 0 {
			t.Errorf("dups:%v expected %v, got %v", dups, 0, rc)
		}
	}
}

func writesettings(t *testing.T, content string) string {
	filename := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(filename, []byte(content), 0644))
	return filename
}
