package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"
)

const (
	ForbidRuntimeChange uint8 = 1 << iota
	NeedReloadTree
	NeedRestartWatch
	NeedRebindKeys
	NeedResize
)

const (
	defaultConfigName = "tree-explorer"
)

type Config struct {
	Title                 string   `yaml:"Title"`
	TreeFile              string   `yaml:"TreeFile"`
	WatchTree             bool     `yaml:"WatchTree"`
	MaxTreeSize           string   `yaml:"MaxTreeSize"`
	KeyNext               []string `yaml:"KeyNext"`
	KeyPrev               []string `yaml:"KeyPrev"`
	KeyToggle             []string `yaml:"KeyToggle"`
	AllowRuntimeConfigure bool     `yaml:"AllowRuntimeConfigure"`
	Debug                 bool     `yaml:"Debug"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("Title", "File Explorer")
	v.SetDefault("TreeFile", "")
	v.SetDefault("WatchTree", true)
	v.SetDefault("MaxTreeSize", "4MB")
	v.SetDefault("KeyNext", []string{"ArrowDown", "j"})
	v.SetDefault("KeyPrev", []string{"ArrowUp", "k"})
	v.SetDefault("KeyToggle", []string{"Enter", " "})
	v.SetDefault("AllowRuntimeConfigure", true)
	v.SetDefault("Debug", false)
}

// DefaultConfig is the configuration used when no file is present.
func DefaultConfig() Config {
	v := viper.New()
	setDefaults(v)
	c := Config{}
	v.Unmarshal(&c)
	return c
}

func InitConf(specPath string) (*Config, error) {

	viper.SetConfigName(defaultConfigName)
	viper.AddConfigPath("/etc/tree-explorer/")
	viper.AddConfigPath("$HOME/.tree-explorer")
	viper.AddConfigPath(".")

	setDefaults(viper.GetViper())

	// user specific config path
	if stat, err := os.Stat(specPath); stat != nil && err == nil {
		viper.SetConfigFile(specPath)
	}

	configExists := true
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok || os.IsNotExist(err) {
			configExists = false
			if specPath == "" {
				specPath = "./" + defaultConfigName + ".yaml"
			}
			viper.SetConfigFile(specPath)
		} else {
			return nil, err
		}
	}

	c := &Config{}
	if err := viper.Unmarshal(c); err != nil {
		return nil, err
	}

	fileChanged, err := c.NormlizeTreeFile()
	if err != nil {
		return nil, err
	}
	if fileChanged {
		viper.Set("TreeFile", c.TreeFile)
	}

	cf := viper.ConfigFileUsed()
	log.Println("[config] selected config file: ", cf)
	if !configExists || fileChanged {
		if err := c.WriteYaml(); err != nil {
			log.Println("[config] config file write failed: ", err)
		} else {
			log.Println("[config] config file written: ", cf, "exists:", configExists, "treefile changed", fileChanged)
		}
	}

	return c, nil
}

// NormlizeTreeFile makes TreeFile absolute so a watcher sees the same
// path the loader reads.
func (c *Config) NormlizeTreeFile() (bool, error) {
	if c.TreeFile == "" {
		return false, nil
	}
	abs, err := filepath.Abs(c.TreeFile)
	if err != nil {
		return false, fmt.Errorf("ERROR: Invalid path %s, %w", c.TreeFile, err)
	}
	if abs == c.TreeFile {
		return false, nil
	}
	c.TreeFile = abs
	return true, nil
}

// Validate compares c with a proposed nc and reports what has to happen
// before nc can be applied.
func (c *Config) Validate(nc *Config) uint8 {

	var status uint8

	if c.AllowRuntimeConfigure != nc.AllowRuntimeConfigure {
		status |= ForbidRuntimeChange
	}
	if c.TreeFile != nc.TreeFile {
		status |= NeedReloadTree
	}
	if c.TreeFile != nc.TreeFile || c.WatchTree != nc.WatchTree {
		status |= NeedRestartWatch
	}
	if c.MaxTreeSize != nc.MaxTreeSize {
		status |= NeedResize
	}

	rfc := reflect.ValueOf(c)
	rfnc := reflect.ValueOf(nc)

	for _, field := range []string{"KeyNext", "KeyPrev", "KeyToggle"} {
		cval := reflect.Indirect(rfc).FieldByName(field)
		ncval := reflect.Indirect(rfnc).FieldByName(field)

		if !reflect.DeepEqual(cval.Interface(), ncval.Interface()) {
			status |= NeedRebindKeys
			break
		}
	}

	return status
}

// SyncViper copies changed fields of nc into viper so WriteYaml persists them.
func (c *Config) SyncViper(nc Config) {
	cv := reflect.ValueOf(*c)
	nv := reflect.ValueOf(nc)
	typeOfC := cv.Type()
	for i := 0; i < typeOfC.NumField(); i++ {
		if !reflect.DeepEqual(cv.Field(i).Interface(), nv.Field(i).Interface()) {
			name := typeOfC.Field(i).Name
			oval := cv.Field(i).Interface()
			val := nv.Field(i).Interface()
			viper.Set(name, val)
			log.Println("config updated ", name, ": ", oval, " -> ", val)
		}
	}
}

func (c *Config) WriteYaml() error {
	cf := viper.ConfigFileUsed()
	if cf == "" {
		return fmt.Errorf("no config file selected")
	}
	d, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(cf, d, 0666)
}
