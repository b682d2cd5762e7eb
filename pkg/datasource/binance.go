package datasource

import (
	"context"
	"strconv"

	"github.com/adshao/go-binance/v2"
	"github.com/cenkalti/backoff/v4"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// maxQuoteRetries bounds the exponential backoff on transient API errors.
const maxQuoteRetries = 3

// BinanceQuoteService seeds instruments from Binance spot ticker prices.
// Public ticker endpoints need no credentials.
type BinanceQuoteService struct {
	client *binance.Client
}

func NewBinanceQuoteService() *BinanceQuoteService {
	return &BinanceQuoteService{
		client: binance.NewClient("", ""),
	}
}

func (s *BinanceQuoteService) QueryLastPrice(ctx context.Context, symbol string) (float64, error) {
	var prices []*binance.SymbolPrice

	op := func() (err error) {
		prices, err = s.client.NewListPricesService().Symbol(symbol).Do(ctx)
		return err
	}

	err := backoff.Retry(op, backoff.WithContext(
		backoff.WithMaxRetries(
			backoff.NewExponentialBackOff(),
			maxQuoteRetries),
		ctx))
	if err != nil {
		log.WithError(err).Warnf("binance ticker query failed for %s", symbol)
		return 0, errors.Wrapf(ErrUnavailable, "query %s: %v", symbol, err)
	}

	if len(prices) == 0 {
		return 0, errors.Wrapf(ErrUnavailable, "no ticker returned for %s", symbol)
	}

	price, err := strconv.ParseFloat(prices[0].Price, 64)
	if err != nil {
		return 0, errors.Wrapf(ErrUnavailable, "malformed ticker price %q for %s", prices[0].Price, symbol)
	}

	return price, nil
}
