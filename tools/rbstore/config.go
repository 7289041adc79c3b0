package main

import "fmt"
import "os"

import "github.com/bnclabs/rbindex/lib"
import "github.com/bnclabs/rbindex/log"
import "github.com/bnclabs/rbindex/rbtree"
import "gopkg.in/yaml.v3"

// loadsettings read store settings from a yaml file, mixed over
// rbtree.Defaultsettings(). Log settings in the file configure the
// default logger.
func loadsettings(filename string) (lib.Settings, error) {
	setts := rbtree.Defaultsettings()
	setts["log.level"], setts["log.file"] = "info", ""
	if filename == "" {
		log.SetLogger(nil, setts)
		return setts, nil
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	m := map[string]interface{}{}
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("settings %q: %v", filename, err)
	}
	setts = setts.Mixin(m)
	log.SetLogger(nil, setts)
	return setts, nil
}
