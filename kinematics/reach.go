package kinematics

import (
	"github.com/golang/geo/r2"

	"go.viam.com/planarkin/referenceframe"
)

// IsReachable reports whether target lies within the arm's fully extended reach. This is a necessary but not
// sufficient condition: joint limits are ignored, so a constrained arm may fail to reach targets that pass.
func IsReachable(cfg *referenceframe.ArmConfig, target r2.Point) bool {
	return target.Norm() <= cfg.MaxReach()
}
