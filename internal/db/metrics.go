package db

import (
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
)

// PoolStatsCollector reports pgxpool gauges for the work-order store. Every
// series carries the source table as a const label so that several stores can
// share one registry.
type PoolStatsCollector struct {
	pool  *pgxpool.Pool
	descs poolDescs
}

type poolDescs struct {
	total, idle, acquired, max *prometheus.Desc
}

func NewPoolStatsCollector(pool *pgxpool.Pool, namespace, table string) *PoolStatsCollector {
	labels := prometheus.Labels{"table": table}
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "store_pool", name), help, nil, labels)
	}
	return &PoolStatsCollector{
		pool: pool,
		descs: poolDescs{
			total:    desc("conns", "Open connections in the work-order store pool"),
			idle:     desc("idle_conns", "Idle connections in the work-order store pool"),
			acquired: desc("acquired_conns", "Connections in use by work-order fetches"),
			max:      desc("max_conns", "Configured connection limit of the work-order store pool"),
		},
	}
}

func (c *PoolStatsCollector) Describe(ch chan<- *prometheus.Desc) {
	for _, d := range []*prometheus.Desc{c.descs.total, c.descs.idle, c.descs.acquired, c.descs.max} {
		ch <- d
	}
}

func (c *PoolStatsCollector) Collect(ch chan<- prometheus.Metric) {
	if c.pool == nil {
		return
	}
	st := c.pool.Stat()
	gauge := func(d *prometheus.Desc, v int32) {
		ch <- prometheus.MustNewConstMetric(d, prometheus.GaugeValue, float64(v))
	}
	gauge(c.descs.total, st.TotalConns())
	gauge(c.descs.idle, st.IdleConns())
	gauge(c.descs.acquired, st.AcquiredConns())
	gauge(c.descs.max, st.MaxConns())
}

// RegisterMetrics exposes the store's pool gauges on reg. Registering the same
// store twice is not an error.
func (s *Store) RegisterMetrics(reg prometheus.Registerer, namespace string) error {
	err := reg.Register(NewPoolStatsCollector(s.Pool, namespace, s.tableName()))
	var dup prometheus.AlreadyRegisteredError
	if err != nil && !errors.As(err, &dup) {
		return err
	}
	return nil
}
