package device

import (
	"bytes"
	"fmt"
	"strings"
	"unsafe"

	"github.com/achilleasa/clconform/log"
	"github.com/achilleasa/gopencl/v1.2/cl"
)

const (
	platformBufferSize = 100
	deviceBufferSize   = 100

	// Status codes that report an empty result rather than a failure.
	platformNotFound = -1001
	deviceNotFound   = -1
)

var logger = log.New("device")

// Information about a system's opencl platform and supported devices.
type PlatformInfo struct {
	Profile    string
	Version    string
	Name       string
	Vendor     string
	Extensions string
	Devices    []*Device
}

func (pl PlatformInfo) String() string {
	var buf bytes.Buffer

	buf.WriteString(
		fmt.Sprintf(
			"Version:    %s\nName:       %s\nVendor:     %s\nExtensions: %s\nDevices:\n",
			pl.Version,
			pl.Name,
			pl.Vendor,
			pl.Extensions,
		),
	)

	for dIdx, d := range pl.Devices {
		buf.WriteString(fmt.Sprintf("  Device %02d:\n", dIdx))
		buf.WriteString(indentRegex.ReplaceAllString(d.String(), "    "))
		buf.WriteString("\n\n")
	}

	return buf.String()
}

// Get information about supported opencl platforms and devices. Devices
// whose properties cannot be queried are logged and left out.
func GetPlatformInfo() ([]PlatformInfo, error) {
	pids := make([]cl.PlatformID, platformBufferSize)
	pidCount := uint32(0)
	errCode := cl.GetPlatformIDs(uint32(len(pids)), &pids[0], &pidCount)
	if errCode != cl.SUCCESS {
		// An ICD loader without any installed platforms reports PLATFORM_NOT_FOUND_KHR
		if errCode == platformNotFound {
			return nil, nil
		}
		return nil, checkErr("-", "could not enumerate opencl platforms", errCode)
	}

	infoList := make([]PlatformInfo, int(pidCount))
	for pIdx := 0; pIdx < int(pidCount); pIdx++ {
		info, err := platformInfo(pids[pIdx])
		if err != nil {
			return nil, err
		}
		infoList[pIdx] = info
	}

	return infoList, nil
}

func platformInfo(pid cl.PlatformID) (PlatformInfo, error) {
	var (
		info PlatformInfo
		err  error
	)

	platformString := func(paramName string, query infoQuery) string {
		if err != nil {
			return ""
		}
		var value string
		value, err = queryString("-", "could not query PLATFORM_"+paramName, query)
		return value
	}

	info.Profile = platformString("PROFILE", func(size uint64, value unsafe.Pointer, sizeRet *uint64) cl.ErrorCode {
		return cl.GetPlatformInfo(pid, cl.PLATFORM_PROFILE, size, value, sizeRet)
	})
	info.Version = platformString("VERSION", func(size uint64, value unsafe.Pointer, sizeRet *uint64) cl.ErrorCode {
		return cl.GetPlatformInfo(pid, cl.PLATFORM_VERSION, size, value, sizeRet)
	})
	info.Name = platformString("NAME", func(size uint64, value unsafe.Pointer, sizeRet *uint64) cl.ErrorCode {
		return cl.GetPlatformInfo(pid, cl.PLATFORM_NAME, size, value, sizeRet)
	})
	info.Vendor = platformString("VENDOR", func(size uint64, value unsafe.Pointer, sizeRet *uint64) cl.ErrorCode {
		return cl.GetPlatformInfo(pid, cl.PLATFORM_VENDOR, size, value, sizeRet)
	})
	info.Extensions = platformString("EXTENSIONS", func(size uint64, value unsafe.Pointer, sizeRet *uint64) cl.ErrorCode {
		return cl.GetPlatformInfo(pid, cl.PLATFORM_EXTENSIONS, size, value, sizeRet)
	})
	if err != nil {
		return info, err
	}

	ids := make([]cl.DeviceId, deviceBufferSize)
	var devices []*Device

	// Enumerate CPU devices
	found, err := deviceIDs(ids, func(count uint32, first *cl.DeviceId, countRet *uint32) cl.ErrorCode {
		return cl.GetDeviceIDs(pid, cl.DEVICE_TYPE_CPU, count, first, countRet)
	})
	if err != nil {
		return info, err
	}
	devices = append(devices, newDevices(found, CpuDevice)...)

	// Enumerate GPU devices
	found, err = deviceIDs(ids, func(count uint32, first *cl.DeviceId, countRet *uint32) cl.ErrorCode {
		return cl.GetDeviceIDs(pid, cl.DEVICE_TYPE_GPU, count, first, countRet)
	})
	if err != nil {
		return info, err
	}
	devices = append(devices, newDevices(found, GpuDevice)...)

	// Enumerate accelerators
	found, err = deviceIDs(ids, func(count uint32, first *cl.DeviceId, countRet *uint32) cl.ErrorCode {
		return cl.GetDeviceIDs(pid, cl.DEVICE_TYPE_ACCELERATOR, count, first, countRet)
	})
	if err != nil {
		return info, err
	}
	devices = append(devices, newDevices(found, OtherDevice)...)

	// Enumerate names, speed and properties for all platform devices
	info.Devices = probeDevices(devices, func(dev *Device) error {
		var err error
		dev.Name, err = dev.infoString("DEVICE_NAME", func(size uint64, value unsafe.Pointer, sizeRet *uint64) cl.ErrorCode {
			return cl.GetDeviceInfo(dev.Id, cl.DEVICE_NAME, size, value, sizeRet)
		})
		if err != nil {
			return err
		}
		if err = dev.detectSpeed(); err != nil {
			return err
		}
		return dev.loadProperties()
	})

	return info, nil
}

// Run a clGetDeviceIDs query into ids and return the filled prefix. A
// platform without devices of the queried type yields an empty list.
func deviceIDs(ids []cl.DeviceId, query func(count uint32, first *cl.DeviceId, countRet *uint32) cl.ErrorCode) ([]cl.DeviceId, error) {
	count := uint32(0)
	errCode := query(uint32(len(ids)), &ids[0], &count)
	if errCode == deviceNotFound {
		return nil, nil
	}
	if err := checkErr("-", "could not enumerate opencl devices", errCode); err != nil {
		return nil, err
	}
	if int(count) > len(ids) {
		count = uint32(len(ids))
	}
	return append([]cl.DeviceId(nil), ids[:count]...), nil
}

func newDevices(ids []cl.DeviceId, devType DeviceType) []*Device {
	devices := make([]*Device, len(ids))
	for dIdx, id := range ids {
		devices[dIdx] = &Device{Id: id, Type: devType}
	}
	return devices
}

// Keep the devices for which probe succeeds. Failing devices are logged
// and skipped so they do not hide the rest of the platform.
func probeDevices(devices []*Device, probe func(*Device) error) []*Device {
	kept := make([]*Device, 0, len(devices))
	for _, dev := range devices {
		if err := probe(dev); err != nil {
			logger.Warningf("skipping %s device %q: %v", dev.Type, dev.Name, err)
			continue
		}
		kept = append(kept, dev)
	}
	return kept
}

// Scan all available opencl platforms and select devices that match the given
// query. Devices whose names contain any of the blacklist entries are skipped.
func SelectDevices(typeMask DeviceType, matchName string, blackList ...string) ([]*Device, error) {
	platforms, err := GetPlatformInfo()
	if err != nil {
		return nil, err
	}
	list := make([]*Device, 0)
	for _, p := range platforms {
	nextDevice:
		for _, d := range p.Devices {
			// Match type
			if d.Type&typeMask != d.Type {
				continue
			}

			// Match name
			if matchName != "" && !strings.Contains(d.Name, matchName) {
				continue
			}

			for _, text := range blackList {
				if text != "" && strings.Contains(d.Name, text) {
					continue nextDevice
				}
			}

			list = append(list, d)
		}
	}
	return list, nil
}
