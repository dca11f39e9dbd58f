// Copyright 2025 CardinalHQ, Inc
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package distribution holds the univariate marginals used to map
// normal-space model parameters into physical space.
package distribution

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

type Kind int

const (
	KindNormal Kind = iota
	KindLogNormal
	KindBeta
	KindInverseGaussian
	KindStudentsT
)

func (k Kind) String() string {
	switch k {
	case KindNormal:
		return "NormalDist"
	case KindLogNormal:
		return "LognormalDist"
	case KindBeta:
		return "BetaDist"
	case KindInverseGaussian:
		return "InverseGaussianDist"
	case KindStudentsT:
		return "StudentstDist"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind accepts the names produced by Kind.String.
func ParseKind(name string) (Kind, error) {
	for k := KindNormal; k <= KindStudentsT; k++ {
		if k.String() == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown distribution %q", name)
}

// Marginal is implemented only by the distributions of this package.
type Marginal interface {
	CDF(x float64) float64
	// Quantile is the inverse CDF. p must lie in [0, 1].
	Quantile(p float64) float64
	Kind() Kind
	Params() []float64

	marginal()
}

// New builds a marginal of the given kind. The parameter order is the one
// of the matching constructor.
func New(kind Kind, params ...float64) (Marginal, error) {
	want := 2
	if kind == KindStudentsT {
		want = 3
	}
	if len(params) != want {
		return nil, fmt.Errorf("%s takes %d parameters, got %d", kind, want, len(params))
	}
	switch kind {
	case KindNormal:
		return NewNormal(params[0], params[1])
	case KindLogNormal:
		return NewLogNormal(params[0], params[1])
	case KindBeta:
		return NewBeta(params[0], params[1])
	case KindInverseGaussian:
		return NewInverseGaussian(params[0], params[1])
	case KindStudentsT:
		return NewStudentsT(params[0], params[1], params[2])
	}
	return nil, fmt.Errorf("unknown distribution kind %d", int(kind))
}

func positive(name string, v float64) error {
	if !(v > 0) || math.IsInf(v, 1) {
		return fmt.Errorf("%s must be positive and finite, got %v", name, v)
	}
	return nil
}

func finite(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%s must be finite, got %v", name, v)
	}
	return nil
}

type Normal struct {
	dist distuv.Normal
}

func NewNormal(mu, sigma float64) (Normal, error) {
	if err := finite("mu", mu); err != nil {
		return Normal{}, err
	}
	if err := positive("sigma", sigma); err != nil {
		return Normal{}, err
	}
	return Normal{dist: distuv.Normal{Mu: mu, Sigma: sigma}}, nil
}

func (d Normal) CDF(x float64) float64      { return d.dist.CDF(x) }
func (d Normal) Quantile(p float64) float64 { return d.dist.Quantile(p) }
func (d Normal) Kind() Kind                 { return KindNormal }
func (d Normal) Params() []float64          { return []float64{d.dist.Mu, d.dist.Sigma} }
func (Normal) marginal()                    {}

// LogNormal is parameterized by the mean and standard deviation of ln x.
type LogNormal struct {
	dist distuv.LogNormal
}

func NewLogNormal(mu, sigma float64) (LogNormal, error) {
	if err := finite("mu", mu); err != nil {
		return LogNormal{}, err
	}
	if err := positive("sigma", sigma); err != nil {
		return LogNormal{}, err
	}
	return LogNormal{dist: distuv.LogNormal{Mu: mu, Sigma: sigma}}, nil
}

func (d LogNormal) CDF(x float64) float64      { return d.dist.CDF(x) }
func (d LogNormal) Quantile(p float64) float64 { return d.dist.Quantile(p) }
func (d LogNormal) Kind() Kind                 { return KindLogNormal }
func (d LogNormal) Params() []float64          { return []float64{d.dist.Mu, d.dist.Sigma} }
func (LogNormal) marginal()                    {}

type Beta struct {
	dist distuv.Beta
}

func NewBeta(alpha, beta float64) (Beta, error) {
	if err := positive("alpha", alpha); err != nil {
		return Beta{}, err
	}
	if err := positive("beta", beta); err != nil {
		return Beta{}, err
	}
	return Beta{dist: distuv.Beta{Alpha: alpha, Beta: beta}}, nil
}

func (d Beta) CDF(x float64) float64      { return d.dist.CDF(x) }
func (d Beta) Quantile(p float64) float64 { return d.dist.Quantile(p) }
func (d Beta) Kind() Kind                 { return KindBeta }
func (d Beta) Params() []float64          { return []float64{d.dist.Alpha, d.dist.Beta} }
func (Beta) marginal()                    {}

// StudentsT is the location-scale t distribution.
type StudentsT struct {
	dist distuv.StudentsT
}

func NewStudentsT(mu, sigma, nu float64) (StudentsT, error) {
	if err := finite("mu", mu); err != nil {
		return StudentsT{}, err
	}
	if err := positive("sigma", sigma); err != nil {
		return StudentsT{}, err
	}
	if err := positive("nu", nu); err != nil {
		return StudentsT{}, err
	}
	return StudentsT{dist: distuv.StudentsT{Mu: mu, Sigma: sigma, Nu: nu}}, nil
}

func (d StudentsT) CDF(x float64) float64      { return d.dist.CDF(x) }
func (d StudentsT) Quantile(p float64) float64 { return d.dist.Quantile(p) }
func (d StudentsT) Kind() Kind                 { return KindStudentsT }
func (d StudentsT) Params() []float64 {
	return []float64{d.dist.Mu, d.dist.Sigma, d.dist.Nu}
}
func (StudentsT) marginal() {}
