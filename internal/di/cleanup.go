package di

import (
	"tabsleep/internal/providers"
	"tabsleep/internal/storage"
	"tabsleep/internal/storage/interfaces"
	"tabsleep/internal/structures"
)

func logProvider(conf *structures.Config) (providers.Logger, func(), error) {
	logger, err := providers.NewLogProvider(conf)
	if err != nil {
		return nil, nil, err
	}
	return logger, logger.Close, nil
}

func compressorProvider() (interfaces.CompressorInterface, func(), error) {
	compressor, err := storage.NewZstdCompressor()
	if err != nil {
		return nil, nil, err
	}
	return compressor, compressor.Close, nil
}
