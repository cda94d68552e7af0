// Package hcl provides the HCL implementation of config.Loader and a writer
// that renders courses back to HCL.
//
// A course file holds one or more course blocks. Each course has exactly one
// root node block; node blocks nest to form the tree:
//
//	course "Introduction to Go" {
//	  node "1" {
//	    type  = "st"
//	    title = "Overview"
//
//	    node "100" {
//	      type             = "sp"
//	      title            = "Welcome"
//	      access_condition = "getPassed(\"90\")"
//	      config = {
//	        softkey = "welcome-video"
//	      }
//	    }
//	  }
//	}
package hcl
