package loader

import (
	"LightCaster/internal/logger"
	"LightCaster/internal/renderer"
	"os"

	"go.uber.org/zap"
)

const cacheSuffix = ".meshcache"

// CachePath is where LoadModelCached keeps the parsed form of objPath.
func CachePath(objPath string) string {
	return objPath + cacheSuffix
}

// LoadModelCached behaves like LoadModel but reuses a binary cache next to
// the OBJ when the cache is at least as new as the OBJ. Cache problems are
// logged and never returned.
func LoadModelCached(path string) (*renderer.Model, error) {
	objInfo, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	cachePath := CachePath(path)
	if model, ok := readCache(cachePath, objInfo); ok {
		model.SourcePath = path
		logger.Log.Info("Model loaded from cache",
			zap.String("path", path),
			zap.Int("meshes", len(model.Meshes)))
		return model, nil
	}

	model, err := LoadModel(path)
	if err != nil {
		return nil, err
	}
	writeCache(cachePath, model)
	return model, nil
}

func readCache(cachePath string, objInfo os.FileInfo) (*renderer.Model, bool) {
	info, err := os.Stat(cachePath)
	if err != nil || info.ModTime().Before(objInfo.ModTime()) {
		return nil, false
	}

	data, err := os.ReadFile(cachePath)
	if err != nil {
		logger.Log.Warn("Failed to read model cache", zap.String("path", cachePath), zap.Error(err))
		return nil, false
	}
	model, err := renderer.DecodeModelBinary(data)
	if err != nil {
		logger.Log.Warn("Ignoring invalid model cache", zap.String("path", cachePath), zap.Error(err))
		return nil, false
	}
	return model, true
}

func writeCache(cachePath string, model *renderer.Model) {
	data, err := renderer.EncodeModelBinary(model)
	if err != nil {
		logger.Log.Warn("Failed to encode model cache", zap.Error(err))
		return
	}
	if err := os.WriteFile(cachePath, data, 0o644); err != nil {
		logger.Log.Warn("Failed to write model cache", zap.String("path", cachePath), zap.Error(err))
		return
	}
	logger.Log.Debug("Model cache written", zap.String("path", cachePath), zap.Int("bytes", len(data)))
}
