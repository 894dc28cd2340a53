package pooltop

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const addressKey = "address"

// AddressStore persists the tracked wallet address in a small YAML file
type AddressStore struct {
	v    *viper.Viper
	path string
}

func NewAddressStore(path string) (*AddressStore, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return &AddressStore{v: v, path: path}, nil
}

// Load returns the stored address, empty when signed out
func (s *AddressStore) Load() string {
	return strings.TrimSpace(s.v.GetString(addressKey))
}

// Save validates and stores addr
func (s *AddressStore) Save(addr string) (string, error) {
	addr, err := ValidateAddress(addr)
	if err != nil {
		return "", err
	}
	s.v.Set(addressKey, addr)
	return addr, s.write()
}

// Clear forgets the stored address
func (s *AddressStore) Clear() error {
	s.v.Set(addressKey, "")
	return s.write()
}

func (s *AddressStore) write() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	return s.v.WriteConfigAs(s.path)
}
